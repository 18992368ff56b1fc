package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/samoilovartem/movies-auth/internal/service"
	"github.com/samoilovartem/movies-auth/internal/token"
)

// Context keys populated by the authentication middleware.
const (
	CtxUserID      = "user_id"
	CtxRoles       = "roles"
	CtxAccessToken = "access_token"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's subject and role claims into the
// request context.  Two checks run in order: the codec verifies
// signature and expiry, then the registry confirms the token is still
// live.  A token missing from the registry fails with
// ACCESS_TOKEN_EXPIRED regardless of its cryptographic validity —
// revocation and activation failures both look the same from here.
func JWTAuth(codec *token.Codec, registry service.AccessRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, &service.ServiceError{
					Code: "INVALID_TOKEN", Message: "missing bearer token",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := codec.Decode(raw)
			if err != nil || claims.TokenType != token.KindAccess {
				return c.JSON(http.StatusUnauthorized, &service.ServiceError{
					Code: "INVALID_TOKEN", Message: "invalid token",
				})
			}

			live, err := registry.IsActive(c.Request().Context(), raw)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registry unavailable"})
			}
			if !live {
				return c.JSON(http.StatusUnauthorized, service.ErrAccessTokenExpired)
			}

			// Store the subject, roles and raw token in the context for
			// handlers and downstream middleware.
			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRoles, claims.Roles)
			c.Set(CtxAccessToken, raw)
			return next(c)
		}
	}
}

// RefreshJWT returns a middleware for the refresh endpoint: it expects
// a Bearer token of the refresh kind and skips the registry check,
// since refresh tokens are validated against the credential store by
// the session engine itself.
func RefreshJWT(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, &service.ServiceError{
					Code: "INVALID_TOKEN", Message: "missing bearer token",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := codec.Decode(raw)
			if err != nil || claims.TokenType != token.KindRefresh {
				return c.JSON(http.StatusUnauthorized, &service.ServiceError{
					Code: "INVALID_TOKEN", Message: "invalid token",
				})
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxAccessToken, raw)
			return next(c)
		}
	}
}

// UserID extracts the authenticated subject id stored by JWTAuth.
func UserID(c echo.Context) string {
	if v, ok := c.Get(CtxUserID).(string); ok {
		return v
	}
	return ""
}

// Roles extracts the role claims stored by JWTAuth.
func Roles(c echo.Context) []string {
	if v, ok := c.Get(CtxRoles).([]string); ok {
		return v
	}
	return nil
}

// AccessToken extracts the raw bearer token stored by JWTAuth.
func AccessToken(c echo.Context) string {
	if v, ok := c.Get(CtxAccessToken).(string); ok {
		return v
	}
	return ""
}
