package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/samoilovartem/movies-auth/internal/middleware"
	"github.com/samoilovartem/movies-auth/internal/model"
)

// ----- DTOs -----

type modifyReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type rolePart struct {
	RoleID   string `json:"role_id"`
	RoleName string `json:"role_name"`
}

// Modify changes the caller's username and/or password.
func (h *AuthHandler) Modify(c echo.Context) error {
	var req modifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" && req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username or password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Sessions.Modify(ctx, middleware.UserID(c), req.Username, req.Password); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusAccepted, echo.Map{"msg": "Credentials have been updated"})
}

// AuthHistory returns one page of the caller's authentication events,
// newest first.  Supported query parameters: page, per_page.
func (h *AuthHandler) AuthHistory(c echo.Context) error {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 3)

	ctx, cancel := reqCtx(c)
	defer cancel()

	history, err := h.Sessions.AuthHistory(ctx, middleware.UserID(c), page, perPage)
	if err != nil {
		return fail(c, err)
	}

	events := make([]echo.Map, 0, len(history.Events))
	for _, ev := range history.Events {
		events = append(events, echo.Map{
			"uuid":        ev.ID,
			"time":        ev.EventTime,
			"fingerprint": ev.Fingerprint,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":    history.Total,
		"pages":    history.Pages,
		"page":     history.Page,
		"per_page": history.PerPage,
		"events":   events,
	})
}

// MyRoles lists the caller's current roles.
func (h *AuthHandler) MyRoles(c echo.Context) error {
	return h.rolesOf(c, middleware.UserID(c))
}

// UserRoles lists another user's current roles.
func (h *AuthHandler) UserRoles(c echo.Context) error {
	return h.rolesOf(c, c.Param("user_id"))
}

func (h *AuthHandler) rolesOf(c echo.Context, userID string) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	roles, err := h.Sessions.UserRoles(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rolesResponse(roles))
}

func rolesResponse(roles []model.Role) []rolePart {
	out := make([]rolePart, 0, len(roles))
	for _, r := range roles {
		out = append(out, rolePart{RoleID: r.ID, RoleName: r.Name})
	}
	return out
}

func intQuery(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
