package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/samoilovartem/movies-auth/internal/handler"    // handlers implementing the endpoints
	"github.com/samoilovartem/movies-auth/internal/middleware" // JWT, role and rate-limit middleware
	"github.com/samoilovartem/movies-auth/internal/model"
	"github.com/samoilovartem/movies-auth/internal/ratelimit"
	"github.com/samoilovartem/movies-auth/internal/service"
	"github.com/samoilovartem/movies-auth/internal/token"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session lifecycle and user endpoints.
// Unauthenticated operations live under /v1/auth; endpoints requiring a
// live access token live under /v1/user, gated by JWTAuth plus the
// per-user rate limit.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, codec *token.Codec,
	registry service.AccessRegistry, limiter *ratelimit.Limiter) {
	// Signup and login need no session.  Refresh carries the refresh
	// token as its bearer credential.
	g := e.Group("/v1/auth")
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.PUT("/refresh", a.Refresh, middleware.RefreshJWT(codec))

	// Protected user endpoints: valid, still-live access token, then
	// the fixed-window rate limit keyed by the subject.
	u := e.Group("/v1/user")
	u.Use(middleware.JWTAuth(codec, registry))
	u.Use(middleware.RateLimit(limiter))
	u.DELETE("/logout", a.Logout)
	u.PATCH("/modify", a.Modify)
	u.GET("/auth_history", a.AuthHistory)
	u.GET("/roles", a.MyRoles)
	u.GET("/:user_id/roles", a.UserRoles)
}

// RegisterRoles wires the role administration endpoints.  Every route
// requires a live access token carrying the superuser role.
func RegisterRoles(e *echo.Echo, r *handler.RoleHandler, codec *token.Codec, registry service.AccessRegistry) {
	g := e.Group("/v1/role")
	g.Use(middleware.JWTAuth(codec, registry))
	g.Use(middleware.RequireRole(model.RoleSuperuser))
	g.POST("", r.Create)
	g.GET("", r.List)
	g.PUT("/:role_id", r.Update)
	g.DELETE("/:role_id", r.Delete)
	g.POST("/assign/:user_id", r.Assign)
	g.DELETE("/revoke/:user_id", r.Revoke)
}

// RegisterSocial wires federated login.  These routes are public: the
// session only exists after the provider callback succeeds.
func RegisterSocial(e *echo.Echo, s *handler.SocialHandler) {
	g := e.Group("/v1/social")
	g.GET("", s.List)
	g.GET("/login/:provider", s.Login)
	g.GET("/handler/:provider", s.Callback)
}
