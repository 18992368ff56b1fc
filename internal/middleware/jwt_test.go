package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samoilovartem/movies-auth/internal/token"
)

// memRegistry is an in-memory stand-in for the Redis-backed registry.
type memRegistry struct {
	mu   sync.Mutex
	live map[string]bool
}

func newMemRegistry() *memRegistry { return &memRegistry{live: map[string]bool{}} }

func (m *memRegistry) Activate(_ context.Context, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live[tok] = true
	return nil
}

func (m *memRegistry) IsActive(_ context.Context, tok string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live[tok], nil
}

func (m *memRegistry) Revoke(_ context.Context, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, tok)
	return nil
}

// perform runs one request through an Echo instance with the middleware
// installed in front of a probe handler that echoes the context values.
func perform(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, *struct {
	userID string
	roles  []string
	raw    string
}) {
	t.Helper()
	captured := &struct {
		userID string
		roles  []string
		raw    string
	}{}

	e := echo.New()
	e.GET("/probe", func(c echo.Context) error {
		captured.userID = UserID(c)
		captured.roles = Roles(c)
		captured.raw = AccessToken(c)
		return c.NoContent(http.StatusOK)
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, captured
}

func TestJWTAuthHappyPath(t *testing.T) {
	t.Parallel()
	codec := token.NewCodec("secret", 15, 60)
	registry := newMemRegistry()

	access, err := codec.Mint("u1", []string{"editor"}, token.KindAccess)
	require.NoError(t, err)
	require.NoError(t, registry.Activate(context.Background(), access))

	rec, got := perform(t, JWTAuth(codec, registry), "Bearer "+access)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", got.userID)
	assert.Equal(t, []string{"editor"}, got.roles)
	assert.Equal(t, access, got.raw)
}

func TestJWTAuthRejections(t *testing.T) {
	t.Parallel()
	codec := token.NewCodec("secret", 15, 60)
	registry := newMemRegistry()

	access, err := codec.Mint("u1", nil, token.KindAccess)
	require.NoError(t, err)
	refresh, err := codec.Mint("u1", nil, token.KindRefresh)
	require.NoError(t, err)
	require.NoError(t, registry.Activate(context.Background(), refresh))

	foreign, err := token.NewCodec("other-secret", 15, 60).Mint("u1", nil, token.KindAccess)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"garbage", "Bearer not.a.jwt"},
		{"foreign signature", "Bearer " + foreign},
		{"refresh kind rejected", "Bearer " + refresh},
		{"valid but never activated", "Bearer " + access},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec, got := perform(t, JWTAuth(codec, registry), tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, got.userID)
		})
	}
}

func TestJWTAuthRevokedToken(t *testing.T) {
	t.Parallel()
	codec := token.NewCodec("secret", 15, 60)
	registry := newMemRegistry()
	ctx := context.Background()

	access, err := codec.Mint("u1", nil, token.KindAccess)
	require.NoError(t, err)
	require.NoError(t, registry.Activate(ctx, access))
	require.NoError(t, registry.Revoke(ctx, access))

	rec, _ := perform(t, JWTAuth(codec, registry), "Bearer "+access)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCESS_TOKEN_EXPIRED")
}

func TestRefreshJWT(t *testing.T) {
	t.Parallel()
	codec := token.NewCodec("secret", 15, 60)

	refresh, err := codec.Mint("u1", nil, token.KindRefresh)
	require.NoError(t, err)
	access, err := codec.Mint("u1", nil, token.KindAccess)
	require.NoError(t, err)

	// No registry involved: a minted refresh token is accepted as is.
	rec, got := perform(t, RefreshJWT(codec), "Bearer "+refresh)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", got.userID)
	assert.Equal(t, refresh, got.raw)

	// An access token cannot stand in for a refresh token.
	rec, _ = perform(t, RefreshJWT(codec), "Bearer "+access)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
