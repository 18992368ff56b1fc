package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/samoilovartem/movies-auth/internal/model"
)

// UserRepo provides persistence for the `users` table.  Password
// hashing happens in the service layer; the repository only ever sees
// the bcrypt hash.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns the stored record.  Unique-index
// violations are mapped to the repository sentinels so a race that
// slips past the service-level lookup still surfaces as a conflict.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (model.User, error) {
	u := model.User{
		ID:           uuid.NewString(),
		Username:     strings.ToLower(strings.TrimSpace(username)),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password) VALUES (?,?,?,?)",
		u.ID, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		if isDuplicate(err) {
			if strings.Contains(err.Error(), "email") {
				return model.User{}, ErrEmailExists
			}
			return model.User{}, ErrLoginExists
		}
		return model.User{}, err
	}
	return u, nil
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,username,email,password,is_totp_enabled,created_at,updated_at FROM users WHERE id=? LIMIT 1", id)
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,username,email,password,is_totp_enabled,created_at,updated_at FROM users WHERE username=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(username)))
}

// FindByUsernameOrEmail returns any user holding either value.  Signup
// uses this single lookup for both uniqueness checks; the caller
// compares the returned username to decide which conflict to report.
func (r *UserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,username,email,password,is_totp_enabled,created_at,updated_at FROM users WHERE username=? OR email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(username)), strings.ToLower(strings.TrimSpace(email)))
}

// UpdateCredentials persists a new username and/or password hash.
func (r *UserRepo) UpdateCredentials(ctx context.Context, id, username, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=?, password=?, updated_at=NOW() WHERE id=?",
		strings.ToLower(strings.TrimSpace(username)), passwordHash, id)
	if err != nil && isDuplicate(err) {
		return ErrLoginExists
	}
	return err
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsTOTPEnabled, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// isDuplicate detects MySQL error 1062 (duplicate entry).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
