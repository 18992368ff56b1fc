package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/samoilovartem/movies-auth/internal/model"
	"github.com/samoilovartem/movies-auth/internal/service"
)

// Allowed is the role-authorization decision: a superuser passes every
// check, otherwise the claim set must intersect the required set.  The
// decision trusts the token's claims as minted; assignments revoked
// after minting do not affect a still-live token.
func Allowed(claimRoles, required []string) bool {
	want := make(map[string]bool, len(required))
	for _, r := range required {
		want[r] = true
	}
	for _, r := range claimRoles {
		if r == model.RoleSuperuser || want[r] {
			return true
		}
	}
	return false
}

// RequireRole returns a middleware enforcing that the authenticated
// user holds at least one of the given roles.  It assumes JWTAuth ran
// earlier and stored the role claims in the context.  Failing the check
// aborts the request with 403 INSUFFICIENT_PERMISSIONS.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Allowed(Roles(c), roles) {
				return c.JSON(http.StatusForbidden, service.ErrInsufficientPermissions)
			}
			return next(c)
		}
	}
}
