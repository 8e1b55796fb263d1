package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"watchlist-api/internal/config"
)

// NewRedis connects to Redis when an address is configured. Returns nil
// without error when Redis is not configured; the caller runs uncached.
func NewRedis(cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	addr := cfg.Addr()
	if addr == "" {
		log.Info("redis not configured, analytics caching disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Info("redis connection established",
		zap.String("addr", addr),
		zap.Int("db", cfg.DB))
	return client, nil
}
