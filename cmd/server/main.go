package main // Entry point package

import (
	"log" // Logging library
	"os"

	"github.com/joho/godotenv"    // .env file loader for local runs
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/samoilovartem/movies-auth/internal/config"
	"github.com/samoilovartem/movies-auth/internal/database"
	"github.com/samoilovartem/movies-auth/internal/handler"
	"github.com/samoilovartem/movies-auth/internal/queue"
	"github.com/samoilovartem/movies-auth/internal/ratelimit"
	"github.com/samoilovartem/movies-auth/internal/repository"
	"github.com/samoilovartem/movies-auth/internal/router"
	"github.com/samoilovartem/movies-auth/internal/service"
	"github.com/samoilovartem/movies-auth/internal/social"
	"github.com/samoilovartem/movies-auth/internal/token"
)

func main() {
	_ = godotenv.Load() // best effort; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql open failed: %v", err)
	}
	rdb, err := config.NewRedisClient()
	if err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLMin)
	registry := token.NewRegistry(rdb, codec.AccessTTL())
	limiter := ratelimit.New(rdb, cfg.RateLimitPerMin)

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	tokens := repository.NewRefreshTokenRepo(db)
	history := repository.NewAuthHistoryRepo(db)
	socials := repository.NewSocialAccountRepo(db)

	sessions := service.NewSessionService(users, roles, tokens, history, socials,
		registry, codec, queue.PublishAuthEvent, cfg.BcryptCost, cfg.RefreshTTLMin)
	roleAdmin := service.NewRoleService(users, roles)

	providers := social.NewRegistry(
		social.NewGoogle(os.Getenv("GOOGLE_AUTH_CLIENT_ID"), os.Getenv("GOOGLE_AUTH_SECRET"), socialHandlerURL("google")),
		social.NewYandex(os.Getenv("YANDEX_AUTH_CLIENT_ID"), os.Getenv("YANDEX_AUTH_SECRET"), socialHandlerURL("yandex")),
		social.NewVK(os.Getenv("VK_AUTH_CLIENT_ID"), os.Getenv("VK_AUTH_SECRET"), socialHandlerURL("vk")),
	)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(sessions), codec, registry, limiter)
	router.RegisterRoles(e, handler.NewRoleHandler(roleAdmin), codec, registry)
	router.RegisterSocial(e, handler.NewSocialHandler(providers, sessions))

	// Background consumer mirrors auth events into logs/auth.log.  It
	// reconnects on broker failures and never stops the server.
	go func() {
		if err := queue.StartAuthConsumer(); err != nil {
			log.Printf("auth consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// socialHandlerURL builds the provider callback URL from the public
// base URL of this service.
func socialHandlerURL(provider string) string {
	base := os.Getenv("SOCIAL_HANDLER_BASE_URL")
	if base == "" {
		base = "http://localhost:8000/v1/social/handler/"
	}
	return base + provider
}
