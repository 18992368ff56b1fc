package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samoilovartem/movies-auth/internal/ratelimit"
	"github.com/samoilovartem/movies-auth/internal/service"
)

// RateLimit returns a middleware gating requests through the
// fixed-window limiter, keyed by the authenticated user.  It must run
// after JWTAuth so the subject id is available.  An over-limit call is
// rejected with 429 RATE_LIMIT_EXCEEDED; a limiter backend failure is a
// 500, not an open gate.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), UserID(c))
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rate limiter unavailable"})
			}
			if !ok {
				return c.JSON(http.StatusTooManyRequests, service.ErrRateLimitExceeded)
			}
			return next(c)
		}
	}
}
