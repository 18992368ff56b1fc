package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenRepo persists refresh tokens.  A row exists only while
// its token is live; consuming a token deletes the row, which is what
// makes every token single-use even under concurrent callers.
type RefreshTokenRepo struct{ DB *sql.DB }

func NewRefreshTokenRepo(db *sql.DB) *RefreshTokenRepo { return &RefreshTokenRepo{DB: db} }

// Store inserts a refresh token row.
func (r *RefreshTokenRepo) Store(ctx context.Context, userID, tokenValue string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (id, user_id, token_value, expires_at) VALUES (?,?,?,?)",
		uuid.NewString(), userID, tokenValue, expiresAt)
	return err
}

// Rotate atomically consumes oldValue and stores newValue for the same
// user in one transaction.  The delete and the insert commit together,
// so of N concurrent rotations of the same token exactly one observes
// RowsAffected==1 and wins; every other caller gets ErrTokenNotFound.
func (r *RefreshTokenRepo) Rotate(ctx context.Context, userID, oldValue, newValue string, expiresAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE token_value=? AND user_id=?", oldValue, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (id, user_id, token_value, expires_at) VALUES (?,?,?,?)",
		uuid.NewString(), userID, newValue, expiresAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Consume deletes the token row without a replacement (logout).  The
// not-found discipline matches Rotate: a value that is absent, already
// consumed or foreign to the user yields ErrTokenNotFound.
func (r *RefreshTokenRepo) Consume(ctx context.Context, userID, tokenValue string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE token_value=? AND user_id=?", tokenValue, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	return nil
}
