// Package cache wraps Redis for caching fetched applicants, resolved risk
// settings and operator records.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisClient builds a Redis client with pool settings tuned for the
// dashboard's read-heavy traffic.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// Ping verifies connectivity. The dashboard degrades gracefully without
// Redis, so callers treat a failure as a warning, not a fatal error.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
