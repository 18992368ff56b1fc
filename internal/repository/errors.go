// Package repository implements the credential-store access layer over
// database/sql.  This file defines error values reused across the
// repositories.  These sentinels let the service layer distinguish
// failure scenarios without inspecting driver errors: for example
// ErrTokenNotFound marks the losing side of a concurrent refresh, and
// the uniqueness sentinels map to 409 responses at the boundary.
package repository

import "errors"

// ErrLoginExists is returned when an insert or update would violate the
// unique constraint on usernames.
var ErrLoginExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert would violate the unique
// constraint on email addresses.
var ErrEmailExists = errors.New("email already exists")

// ErrRoleExists is returned when a role with the requested name is
// already present.
var ErrRoleExists = errors.New("role already exists")

// ErrTokenNotFound is returned when a refresh token value is absent
// from the store, either because it was never issued or because a
// concurrent call consumed it first.
var ErrTokenNotFound = errors.New("refresh token not found")

// ErrAssignmentExists is returned when the user already holds the role
// being assigned.  A (user, role) pair appears at most once.
var ErrAssignmentExists = errors.New("user already has this role")

// ErrAssignmentNotFound is returned when revoking a role the user does
// not hold.
var ErrAssignmentNotFound = errors.New("user does not have this role")
