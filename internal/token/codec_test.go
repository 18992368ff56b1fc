package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret", 15, 32312)
	roles := []string{"user", "editor"}

	raw, err := codec.Mint("2f0c54f1-9c2b-4f4e-8a6e-1a2b3c4d5e6f", roles, KindAccess)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := codec.Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, "2f0c54f1-9c2b-4f4e-8a6e-1a2b3c4d5e6f", claims.Subject)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, KindAccess, claims.TokenType)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestCodecKinds(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret", 15, 32312)

	access, err := codec.Mint("u1", nil, KindAccess)
	require.NoError(t, err)
	refresh, err := codec.Mint("u1", nil, KindRefresh)
	require.NoError(t, err)

	ac, err := codec.Decode(access)
	require.NoError(t, err)
	rc, err := codec.Decode(refresh)
	require.NoError(t, err)

	assert.Equal(t, KindAccess, ac.TokenType)
	assert.Equal(t, KindRefresh, rc.TokenType)
	// The refresh token outlives the access token by configuration.
	assert.True(t, rc.ExpiresAt.After(ac.ExpiresAt.Time))
}

func TestCodecDecodeFailures(t *testing.T) {
	t.Parallel()

	codec := NewCodec("test-secret", 15, 32312)
	raw, err := codec.Mint("u1", []string{"user"}, KindAccess)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "not-a-token"},
		{name: "empty", raw: ""},
		{name: "truncated", raw: raw[:len(raw)-10]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	minter := NewCodec("secret-one", 15, 32312)
	verifier := NewCodec("secret-two", 15, 32312)

	raw, err := minter.Mint("u1", nil, KindAccess)
	require.NoError(t, err)

	_, err = verifier.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecRejectsExpired(t *testing.T) {
	t.Parallel()

	// Negative TTL makes the token expired at mint time.
	codec := NewCodec("test-secret", -1, -1)
	raw, err := codec.Mint("u1", nil, KindAccess)
	require.NoError(t, err)

	_, err = codec.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
