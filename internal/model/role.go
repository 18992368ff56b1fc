package model

import "time"

// Seed role names.  The roles table is open to custom names created at
// runtime, but these two always exist and carry special meaning:
// RoleSuperuser bypasses every role check.
const (
	RoleUser      = "user"
	RoleSuperuser = "superuser"
)

// Role represents a row in the `roles` table.
//
// Fields:
//  ID          – UUID primary key of the role.
//  Name        – unique role name (e.g. "user", "superuser").
//  Description – human readable purpose of the role.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Role struct {
	ID          string    // roles.id
	Name        string    // roles.name
	Description string    // roles.description
	CreatedAt   time.Time // roles.created_at
	UpdatedAt   time.Time // roles.updated_at
}

// UserRole links a user to a role via the `user_roles` table.  A given
// (user, role) pair appears at most once; the repository enforces the
// invariant with a conflict check before insert.
type UserRole struct {
	ID     string // user_roles.id
	UserID string // user_roles.user_id
	RoleID string // user_roles.role_id
}
