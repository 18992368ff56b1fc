package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted because these structs are used internally by the
// repository layer; handlers define separate response types with the
// JSON shapes they need.
//
// Fields:
//  ID            – UUID primary key of the user.
//  Username      – unique login name.
//  Email         – unique email address.
//  PasswordHash  – bcrypt hashed password.
//  IsTOTPEnabled – whether a second factor is configured.  Reserved for
//                  a future two-factor flow; no in-scope flow reads it.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
	ID            string    // users.id
	Username      string    // users.username
	Email         string    // users.email
	PasswordHash  string    // users.password
	IsTOTPEnabled bool      // users.is_totp_enabled
	CreatedAt     time.Time // users.created_at
	UpdatedAt     time.Time // users.updated_at
}
