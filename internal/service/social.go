package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/samoilovartem/movies-auth/internal/model"
	"github.com/samoilovartem/movies-auth/internal/social"
	"github.com/samoilovartem/movies-auth/internal/utils"
)

// SocialAccountStore links external provider identities to local users.
type SocialAccountStore interface {
	Find(ctx context.Context, provider, socialID string) (model.SocialAccount, error)
	Link(ctx context.Context, userID, provider, socialID string) error
}

// LoginSocial signs in a user authenticated by an external provider.
// A first-time identity gets a local account created on the fly; after
// that the flow is the ordinary login commit: token pair, history row,
// registry activation.  Social users have no usable local password
// until they set one through modify.
func (s *SessionService) LoginSocial(ctx context.Context, identity social.ExternalIdentity, client ClientInfo) (TokenPair, error) {
	if s.Socials == nil {
		return TokenPair{}, ErrProviderNotFound
	}

	var user model.User
	acc, err := s.Socials.Find(ctx, identity.Provider, identity.SocialID)
	switch {
	case err == nil:
		user, err = s.Users.GetByID(ctx, acc.UserID)
		if err != nil {
			return TokenPair{}, err
		}
	case errors.Is(err, sql.ErrNoRows):
		user, err = s.createSocialUser(ctx, identity)
		if err != nil {
			return TokenPair{}, err
		}
	default:
		return TokenPair{}, err
	}

	roles, err := s.Roles.ListForUser(ctx, user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return s.commit(ctx, user, roleNames(roles), model.AuthEventLogin, client)
}

// createSocialUser provisions a local account for a first-time external
// identity.  The password is an unguessable random value; username
// collisions with existing local accounts get a random suffix.
func (s *SessionService) createSocialUser(ctx context.Context, identity social.ExternalIdentity) (model.User, error) {
	username := utils.NormalizeLogin(identity.Username)
	if username == "" {
		username = identity.Provider + "_" + identity.SocialID
	}
	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		username = username + "_" + uuid.NewString()[:8]
	} else if !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, err
	}

	hash, err := utils.HashPassword(uuid.NewString(), s.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	user, err := s.Users.Create(ctx, username, identity.Email, hash)
	if err != nil {
		return model.User{}, err
	}
	if err := s.Socials.Link(ctx, user.ID, identity.Provider, identity.SocialID); err != nil {
		return model.User{}, err
	}
	return user, nil
}
