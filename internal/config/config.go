package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The configuration is loaded once at startup and
// treated as immutable afterwards; every component receives the values it
// needs through its constructor rather than reading the environment itself.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign access and refresh tokens
	AccessTTLMin    int    // access token time-to-live in minutes
	RefreshTTLMin   int    // refresh token time-to-live in minutes
	BcryptCost      int    // bcrypt cost for password hashing
	RateLimitPerMin int    // allowed requests per user per minute window
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Token lifetimes and
// the rate-limit ceiling fall back to the service defaults when unset.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"), // empty allowed
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLMin:   envInt("REFRESH_TOKEN_TTL_MIN", 32312),
		BcryptCost:      envInt("BCRYPT_COST", 12),
		RateLimitPerMin: envInt("RATE_LIMIT_PER_MIN", 20),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envInt reads an integer environment variable, returning the default when
// the variable is unset.  A present but malformed value is a fatal error.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
