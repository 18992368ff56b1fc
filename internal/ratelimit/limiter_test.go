package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(rdb, max), mr
}

func TestLimiterCeiling(t *testing.T) {
	l, _ := newTestLimiter(t, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, ok, "call %d must pass", i+1)
	}

	ok, err := l.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok, "6th call in the window must be rejected")
}

func TestLimiterNextWindow(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 30, 40, 0, time.UTC)
	l.now = func() time.Time { return base }

	ok, err := l.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok, "window is exhausted")

	// The next minute uses a fresh counter.
	l.now = func() time.Time { return base.Add(time.Minute) }
	ok, err = l.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok, "1st call of the next window must pass")
}

func TestLimiterIsolatesUsers(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, ok, "a second user has an independent window")
}

func TestLimiterDisabledByZeroMax(t *testing.T) {
	l, _ := newTestLimiter(t, 0)

	ok, err := l.Allow(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok, "non-positive max disables the limiter")
}

func TestLimiterCounterExpires(t *testing.T) {
	l, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 30, 40, 0, time.UTC)
	l.now = func() time.Time { return base }

	_, err := l.Allow(ctx, "u1")
	require.NoError(t, err)
	key := fmt.Sprintf("rl:u1:%d", base.Minute())
	require.True(t, mr.Exists(key))

	// The counter and its expiry are set atomically, so the key can
	// never outlive the window.
	mr.FastForward(time.Minute)
	assert.False(t, mr.Exists(key), "counter must expire")
}

