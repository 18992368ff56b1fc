package model

import "time"

// RefreshToken models an entry in the `refresh_tokens` table.  A row
// exists only while its token is live: each token is consumed (deleted)
// by exactly one successful refresh or logout, which is how the
// single-use discipline is enforced.  A value that is absent from the
// table is invalid, whether it was already consumed or never issued.
//
// Fields:
//  ID         – UUID primary key.
//  UserID     – owner of the token.
//  TokenValue – the signed refresh token string, unique.
//  Used       – reserved flag; consumption deletes the row outright.
//  CreatedAt  – timestamp of issuance.
//  ExpiresAt  – expiration timestamp of the token.
type RefreshToken struct {
	ID         string    // refresh_tokens.id
	UserID     string    // refresh_tokens.user_id
	TokenValue string    // refresh_tokens.token_value
	Used       bool      // refresh_tokens.token_used
	CreatedAt  time.Time // refresh_tokens.created_at
	ExpiresAt  time.Time // refresh_tokens.expires_at
}
