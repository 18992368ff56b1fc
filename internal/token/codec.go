// Package token implements the stateless token codec and the ephemeral
// access-token registry.  The codec mints and verifies signed HS256
// tokens carrying the subject's id and role names; the registry tracks
// which access tokens are currently live in Redis.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds minted by the codec.  Both kinds share the claim layout
// and differ only in lifetime and in the "typ" claim, which the
// authentication middleware checks so a refresh token can never pass as
// an access token.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// ErrInvalidToken is returned by Decode for any token that fails
// verification: bad signature, wrong signing method, malformed payload
// or an expiry in the past.  Callers translate it to a 401.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in both token kinds.  Roles are frozen
// at mint time from the user's role set; a live token keeps the roles it
// was minted with even if the user's assignments change afterwards.
type Claims struct {
	Roles     []string `json:"roles"`
	TokenType string   `json:"typ"`
	jwt.RegisteredClaims
}

// Codec mints and decodes signed tokens.  It holds no state beyond the
// signing key and the configured lifetimes, all fixed at startup.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a Codec.  TTLs are given in minutes to match the
// service configuration.
func NewCodec(secret string, accessTTLMin, refreshTTLMin int) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLMin) * time.Minute,
		refreshTTL: time.Duration(refreshTTLMin) * time.Minute,
	}
}

// AccessTTL reports the configured access-token lifetime.  The registry
// uses it as the TTL of its liveness keys.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// Mint encodes a signed token of the given kind for the user.  The
// roles slice is embedded as-is; an empty set is valid for a user with
// no assignments yet.
func (c *Codec) Mint(userID string, roles []string, kind string) (string, error) {
	now := time.Now().UTC()
	ttl := c.accessTTL
	if kind == KindRefresh {
		ttl = c.refreshTTL
	}
	claims := Claims{
		Roles:     roles,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the embedded claims.
// Every failure mode collapses into ErrInvalidToken; the caller does not
// need to distinguish a forged token from an expired one.
func (c *Codec) Decode(raw string) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
