// Package utils provides small helpers shared across layers: password
// hashing and login normalization.
package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NormalizeLogin lowercases and trims a username or email so uniqueness
// checks and lookups agree on one canonical form.
func NormalizeLogin(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
