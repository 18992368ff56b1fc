package config

// Redis backs the ephemeral access-token registry and the per-user rate
// limiter.  Connection parameters come from the environment.  Unlike the
// relational store, a missing Redis server is fatal: without the registry
// every issued access token would look revoked and no request could pass
// the authentication middleware.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables.
// Supported variables are:
//
//	REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//	REDIS_ADDR – host:port shorthand (wins when both forms are set)
//	REDIS_PASSWORD – optional password
//	REDIS_DB – database number (default 0)
//
// The connection is verified with a short ping; the error is returned to
// the caller so main can decide how to fail.
func NewRedisClient() (*redis.Client, error) {
	addr := "localhost:6379"
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if a := os.Getenv("REDIS_ADDR"); a != "" {
		addr = a
	}
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
