package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"shortlink-be/internal/logger"
)

// NewRedisClient connects to Redis. redisURL may be a redis:// URL or a bare host:port.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{
			Addr: redisURL,
			DB:   0,
		}
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info().Str("addr", opt.Addr).Msg("Connected to Redis")
	return client, nil
}
