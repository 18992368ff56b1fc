package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samoilovartem/movies-auth/internal/model"
	"github.com/samoilovartem/movies-auth/internal/social"
)

func TestLoginSocialFirstTime(t *testing.T) {
	t.Parallel()
	fx := newEngine(t)
	ctx := context.Background()

	identity := social.ExternalIdentity{
		Provider: "google",
		SocialID: "g-123",
		Username: "Alice",
		Email:    "a@gmail.com",
	}
	pair, err := fx.svc.LoginSocial(ctx, identity, ClientInfo{Fingerprint: "ua"})
	require.NoError(t, err)

	claims, err := fx.codec.Decode(pair.AccessToken)
	require.NoError(t, err)

	// A local account was provisioned and linked to the identity.
	user, err := fx.users.GetByID(ctx, claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@gmail.com", user.Email)

	acc, err := fx.socials.Find(ctx, "google", "g-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, acc.UserID)

	events := fx.history.byUser(user.ID)
	require.Len(t, events, 1)
	assert.Equal(t, model.AuthEventLogin, events[0].EventType)
}

func TestLoginSocialRepeatReusesAccount(t *testing.T) {
	t.Parallel()
	fx := newEngine(t)
	ctx := context.Background()

	identity := social.ExternalIdentity{Provider: "yandex", SocialID: "y-9", Username: "bob", Email: "b@ya.ru"}

	pair1, err := fx.svc.LoginSocial(ctx, identity, ClientInfo{})
	require.NoError(t, err)
	pair2, err := fx.svc.LoginSocial(ctx, identity, ClientInfo{})
	require.NoError(t, err)

	c1, err := fx.codec.Decode(pair1.AccessToken)
	require.NoError(t, err)
	c2, err := fx.codec.Decode(pair2.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, c1.Subject, c2.Subject)

	// One account, two logins on record.
	assert.Len(t, fx.history.byUser(c1.Subject), 2)
	assert.Len(t, fx.users.users, 1)
}

func TestLoginSocialUsernameCollision(t *testing.T) {
	t.Parallel()
	fx := newEngine(t)
	ctx := context.Background()
	fx.signup(t, "alice", "pw1", "local@x.com")

	identity := social.ExternalIdentity{Provider: "vk", SocialID: "vk-7", Username: "alice", Email: "a@vk.com"}
	pair, err := fx.svc.LoginSocial(ctx, identity, ClientInfo{})
	require.NoError(t, err)

	claims, err := fx.codec.Decode(pair.AccessToken)
	require.NoError(t, err)
	user, err := fx.users.GetByID(ctx, claims.Subject)
	require.NoError(t, err)

	// The external identity got its own account under a suffixed name.
	assert.NotEqual(t, "alice", user.Username)
	assert.Contains(t, user.Username, "alice_")
}

func TestLoginSocialEmptyUsernameFallback(t *testing.T) {
	t.Parallel()
	fx := newEngine(t)
	ctx := context.Background()

	identity := social.ExternalIdentity{Provider: "vk", SocialID: "42", Email: "v@vk.com"}
	pair, err := fx.svc.LoginSocial(ctx, identity, ClientInfo{})
	require.NoError(t, err)

	claims, err := fx.codec.Decode(pair.AccessToken)
	require.NoError(t, err)
	user, err := fx.users.GetByID(ctx, claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, "vk_42", user.Username)
}
