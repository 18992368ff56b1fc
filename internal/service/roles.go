package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/samoilovartem/movies-auth/internal/model"
	"github.com/samoilovartem/movies-auth/internal/repository"
)

// RoleService implements superuser-gated role administration: CRUD on
// roles plus assignment and revocation.  The guard middleware enforces
// who may call these; the service only enforces data invariants.
type RoleService struct {
	Users UserStore
	Roles RoleStore
}

func NewRoleService(users UserStore, roles RoleStore) *RoleService {
	return &RoleService{Users: users, Roles: roles}
}

// CreateRole adds a role with a unique name.
func (s *RoleService) CreateRole(ctx context.Context, name, description string) (model.Role, error) {
	role, err := s.Roles.Create(ctx, name, description)
	if errors.Is(err, repository.ErrRoleExists) {
		return model.Role{}, ErrRoleExists
	}
	return role, err
}

// ListRoles returns all roles.
func (s *RoleService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.Roles.List(ctx)
}

// UpdateRole changes a role's name and/or description.
func (s *RoleService) UpdateRole(ctx context.Context, id, name, description string) error {
	if _, err := s.Roles.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoleNotFound
		}
		return err
	}
	err := s.Roles.Update(ctx, id, name, description)
	if errors.Is(err, repository.ErrRoleExists) {
		return ErrRoleExists
	}
	return err
}

// DeleteRole removes a role and, via the store's cascade, every
// assignment of it.
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	err := s.Roles.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoleNotFound
	}
	return err
}

// AssignRole grants a role to a user.  Both sides must exist and the
// pair must not already be present.
func (s *RoleService) AssignRole(ctx context.Context, userID, roleID string) error {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if _, err := s.Roles.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoleNotFound
		}
		return err
	}
	err := s.Roles.Assign(ctx, userID, roleID)
	if errors.Is(err, repository.ErrAssignmentExists) {
		return ErrRoleAssigned
	}
	return err
}

// RevokeRole removes a role from a user.  Already-minted tokens keep
// the roles they were minted with; the revocation takes effect on the
// next mint.
func (s *RoleService) RevokeRole(ctx context.Context, userID, roleID string) error {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if _, err := s.Roles.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoleNotFound
		}
		return err
	}
	err := s.Roles.Revoke(ctx, userID, roleID)
	if errors.Is(err, repository.ErrAssignmentNotFound) {
		return ErrRoleNotAssigned
	}
	return err
}
