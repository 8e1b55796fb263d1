package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AnalyticsCache is a read-through cache for the analytics reports. Reports
// aggregate over whole lists, so they are cached briefly instead of being
// invalidated on every write. A nil client disables caching entirely.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAnalyticsCache creates a cache over the given Redis client. Pass a nil
// client to run without caching.
func NewAnalyticsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *AnalyticsCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &AnalyticsCache{client: client, ttl: ttl, logger: logger}
}

// Get loads a cached report into dest. Returns false on miss, disabled cache
// or any Redis error; cache trouble never fails a report.
func (c *AnalyticsCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("analytics cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a computed report under key for the cache TTL
func (c *AnalyticsCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("analytics cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}
