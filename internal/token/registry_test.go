package token

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, ttl time.Duration) (*Registry, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRegistry(rdb, ttl), mr
}

func TestRegistryActivateAndRevoke(t *testing.T) {
	reg, _ := newTestRegistry(t, 15*time.Minute)
	ctx := context.Background()

	live, err := reg.IsActive(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, live, "unknown token must be inactive")

	require.NoError(t, reg.Activate(ctx, "tok"))
	live, err = reg.IsActive(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, live)

	require.NoError(t, reg.Revoke(ctx, "tok"))
	live, err = reg.IsActive(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, live, "revoked token must be inactive before its TTL")

	// Revoking again is a no-op, not an error.
	require.NoError(t, reg.Revoke(ctx, "tok"))
}

func TestRegistryExpiresWithTTL(t *testing.T) {
	reg, mr := newTestRegistry(t, 15*time.Minute)
	ctx := context.Background()

	require.NoError(t, reg.Activate(ctx, "tok"))
	mr.FastForward(15*time.Minute + time.Second)

	live, err := reg.IsActive(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, live, "token must expire with the registry TTL")
}
