package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/samoilovartem/movies-auth/internal/model"
)

// SocialAccountRepo links local users to external provider identities.
type SocialAccountRepo struct{ DB *sql.DB }

func NewSocialAccountRepo(db *sql.DB) *SocialAccountRepo { return &SocialAccountRepo{DB: db} }

// Find returns the link for a (provider, social id) pair, or
// sql.ErrNoRows when the external identity has never signed in.
func (r *SocialAccountRepo) Find(ctx context.Context, provider, socialID string) (model.SocialAccount, error) {
	var acc model.SocialAccount
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,social_id,social_provider_name FROM social_accounts WHERE social_provider_name=? AND social_id=? LIMIT 1",
		provider, socialID).
		Scan(&acc.ID, &acc.UserID, &acc.SocialID, &acc.Provider)
	return acc, err
}

// Link records that the external identity belongs to the local user.
func (r *SocialAccountRepo) Link(ctx context.Context, userID, provider, socialID string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO social_accounts (id, user_id, social_id, social_provider_name) VALUES (?,?,?,?)",
		uuid.NewString(), userID, socialID, provider)
	return err
}
