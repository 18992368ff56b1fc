package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/samoilovartem/movies-auth/internal/middleware"
	"github.com/samoilovartem/movies-auth/internal/service"
)

// AuthHandler bundles dependencies for the session lifecycle endpoints.
type AuthHandler struct {
	Sessions *service.SessionService
}

func NewAuthHandler(s *service.SessionService) *AuthHandler {
	return &AuthHandler{Sessions: s}
}

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type logoutReq struct {
	RefreshToken string `json:"refresh_token"`
}

// clientInfo derives the audit metadata from request headers.  The
// fingerprint is an opaque string; nothing downstream parses it.
func clientInfo(c echo.Context) service.ClientInfo {
	ua := c.Request().Header.Get("User-Agent")
	device := "desktop"
	if strings.Contains(ua, "Mobile") {
		device = "mobile"
	}
	return service.ClientInfo{
		Fingerprint: fmt.Sprintf("{'user-agent': %q}", ua),
		Device:      device,
	}
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// Signup creates a user and returns its first token pair.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password/email required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	pair, err := h.Sessions.Register(ctx, req.Username, req.Password, req.Email, clientInfo(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

// Login verifies credentials and returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	pair, err := h.Sessions.Login(ctx, req.Username, req.Password, clientInfo(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

// Refresh exchanges the bearer refresh token for a new pair.  The
// RefreshJWT middleware has already verified the token's signature and
// kind; the engine enforces single use against the store.
func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	pair, err := h.Sessions.Refresh(ctx, middleware.UserID(c), middleware.AccessToken(c), clientInfo(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

// Logout consumes the refresh token from the body and revokes the
// bearer access token immediately.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Sessions.Logout(ctx, middleware.UserID(c), middleware.AccessToken(c), strings.TrimSpace(req.RefreshToken))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusAccepted, echo.Map{})
}
