package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samoilovartem/movies-auth/internal/service"
)

// RoleHandler exposes the superuser-gated role administration
// endpoints.  The router wraps every route with JWTAuth and
// RequireRole(superuser); the handler assumes both already passed.
type RoleHandler struct {
	Roles *service.RoleService
}

func NewRoleHandler(r *service.RoleService) *RoleHandler {
	return &RoleHandler{Roles: r}
}

type roleReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
type assignReq struct {
	RoleID string `json:"role_id"`
}

// Create adds a new role.
func (h *RoleHandler) Create(c echo.Context) error {
	var req roleReq
	if err := c.Bind(&req); err != nil || req.Name == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing name or description"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Roles.CreateRole(ctx, req.Name, req.Description); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Role created successfully"})
}

// List returns all roles.
func (h *RoleHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	roles, err := h.Roles.ListRoles(ctx)
	if err != nil {
		return fail(c, err)
	}

	out := make([]echo.Map, 0, len(roles))
	for _, r := range roles {
		out = append(out, echo.Map{
			"id":          r.ID,
			"name":        r.Name,
			"description": r.Description,
			"created_at":  r.CreatedAt,
			"updated_at":  r.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"roles": out})
}

// Update changes a role's name and/or description.
func (h *RoleHandler) Update(c echo.Context) error {
	var req roleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Roles.UpdateRole(ctx, c.Param("role_id"), req.Name, req.Description); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Role updated successfully"})
}

// Delete removes a role.
func (h *RoleHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Roles.DeleteRole(ctx, c.Param("role_id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Role deleted successfully"})
}

// Assign grants a role to the user in the path.
func (h *RoleHandler) Assign(c echo.Context) error {
	var req assignReq
	if err := c.Bind(&req); err != nil || req.RoleID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing role_id in request payload"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Roles.AssignRole(ctx, c.Param("user_id"), req.RoleID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Role assigned to user successfully"})
}

// Revoke removes a role from the user in the path.
func (h *RoleHandler) Revoke(c echo.Context) error {
	var req assignReq
	if err := c.Bind(&req); err != nil || req.RoleID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing role_id in request payload"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Roles.RevokeRole(ctx, c.Param("user_id"), req.RoleID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Role revoked from user successfully"})
}
