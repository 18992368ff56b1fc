// Package ratelimit implements a fixed-window request counter over
// Redis.  Windows are keyed by subject id and the current minute of the
// hour, so the counter resets at wall-clock minute boundaries.  A fixed
// window admits up to twice the ceiling across a boundary; that burst is
// a known property of the strategy, accepted for this service.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts gated calls per user per minute window.
type Limiter struct {
	rdb *redis.Client
	max int64
	now func() time.Time // injectable clock for window tests
}

// New builds a Limiter allowing max calls per window.  A non-positive
// max disables the limiter; Allow always succeeds.
func New(rdb *redis.Client, max int) *Limiter {
	return &Limiter{rdb: rdb, max: int64(max), now: time.Now}
}

// Allow increments the caller's window counter and reports whether the
// call is within the ceiling.  The increment and the expiry set run in a
// single MULTI/EXEC pipeline so a counter can never be created without
// an expiry.  The expiry only needs to outlive the window, hence a flat
// 59 seconds on every increment.
func (l *Limiter) Allow(ctx context.Context, userID string) (bool, error) {
	if l.max <= 0 {
		return true, nil
	}
	key := fmt.Sprintf("rl:%s:%d", userID, l.now().UTC().Minute())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 59*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= l.max, nil
}
