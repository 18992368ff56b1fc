package token

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Registry tracks which access tokens are currently valid.  The key is
// the token string itself, the value an empty marker, the TTL the
// access-token lifetime: presence means "not yet expired or revoked".
// Logout removes the key immediately instead of waiting for the TTL.
//
// Absence is interpreted fail-closed.  If the activation write is lost,
// the token is cryptographically valid but treated as not yet activated
// and requests carrying it are rejected.
type Registry struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRegistry builds a Registry whose keys expire after ttl.
func NewRegistry(rdb *redis.Client, ttl time.Duration) *Registry {
	return &Registry{rdb: rdb, ttl: ttl}
}

// Activate marks an access token as live for the configured lifetime.
func (r *Registry) Activate(ctx context.Context, accessToken string) error {
	return r.rdb.Set(ctx, accessToken, "", r.ttl).Err()
}

// IsActive reports whether the token is still present in the registry.
func (r *Registry) IsActive(ctx context.Context, accessToken string) (bool, error) {
	n, err := r.rdb.Exists(ctx, accessToken).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke removes the token so it is rejected before its natural expiry.
// Deleting a token that is already gone is not an error.
func (r *Registry) Revoke(ctx context.Context, accessToken string) error {
	return r.rdb.Del(ctx, accessToken).Err()
}
