package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/samoilovartem/movies-auth/internal/model"
)

// RoleRepo provides CRUD for the `roles` table and for role
// assignments in `user_roles`.  ListForUser resolves a user's roles
// with an explicit join; there is no implicit relationship loading
// anywhere in the store.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// Create inserts a role and returns the stored record.
func (r *RoleRepo) Create(ctx context.Context, name, description string) (model.Role, error) {
	role := model.Role{ID: uuid.NewString(), Name: name, Description: description}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO roles (id, name, description) VALUES (?,?,?)",
		role.ID, role.Name, role.Description)
	if err != nil {
		if isDuplicate(err) {
			return model.Role{}, ErrRoleExists
		}
		return model.Role{}, err
	}
	return role, nil
}

// GetByID fetches a role by primary key.
func (r *RoleRepo) GetByID(ctx context.Context, id string) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,description,created_at,updated_at FROM roles WHERE id=? LIMIT 1", id).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	return role, err
}

// List returns all roles.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,description,created_at,updated_at FROM roles ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Update overwrites name and/or description; empty arguments keep the
// current value.
func (r *RoleRepo) Update(ctx context.Context, id, name, description string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE roles SET name=COALESCE(NULLIF(?,''),name), description=COALESCE(NULLIF(?,''),description), updated_at=NOW() WHERE id=?",
		name, description, id)
	if err != nil && isDuplicate(err) {
		return ErrRoleExists
	}
	return err
}

// Delete removes a role.  Assignments referencing it are removed by the
// foreign key's ON DELETE CASCADE.
func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM roles WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListForUser returns the user's current roles via an explicit join
// through user_roles.
func (r *RoleRepo) ListForUser(ctx context.Context, userID string) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.name, r.description, r.created_at, r.updated_at
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = ?
		 ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Assign links a role to a user.  The pre-insert lookup keeps the
// (user, role) pair unique and turns a repeat assignment into
// ErrAssignmentExists rather than a driver error.
func (r *RoleRepo) Assign(ctx context.Context, userID, roleID string) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM user_roles WHERE user_id=? AND role_id=? LIMIT 1", userID, roleID).Scan(&one)
	if err == nil {
		return ErrAssignmentExists
	}
	if err != sql.ErrNoRows {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO user_roles (id, user_id, role_id) VALUES (?,?,?)",
		uuid.NewString(), userID, roleID)
	if err != nil && isDuplicate(err) {
		return ErrAssignmentExists
	}
	return err
}

// Revoke removes a role assignment from a user.
func (r *RoleRepo) Revoke(ctx context.Context, userID, roleID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_roles WHERE user_id=? AND role_id=?", userID, roleID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
