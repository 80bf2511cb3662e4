package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/retain-hq/retain/internal/shared/config"
	"github.com/retain-hq/retain/internal/shared/logger"
)

const (
	analyticsKeyPrefix = "analytics:snapshot:"
	baseSnapshotTTL    = 5 * time.Minute
	snapshotTTLJitter  = 2 * time.Minute // anti-stampede
)

// AnalyticsCache caches per-tenant analytics snapshots. MRR and churn roll-ups
// walk the full subscription population, so dashboards read through this
// cache instead of recomputing on every request.
type AnalyticsCache interface {
	Get(ctx context.Context, tenantID uint, name string, dest interface{}) (bool, error)
	Set(ctx context.Context, tenantID uint, name string, value interface{}) error
	Invalidate(ctx context.Context, tenantID uint, name string) error
}

// NewRedisClient builds a redis client from config.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type RedisAnalyticsCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisAnalyticsCache(client *redis.Client, logger logger.Interface) *RedisAnalyticsCache {
	return &RedisAnalyticsCache{client: client, logger: logger}
}

func (c *RedisAnalyticsCache) key(tenantID uint, name string) string {
	return fmt.Sprintf("%s%d:%s", analyticsKeyPrefix, tenantID, name)
}

// Get loads a cached snapshot into dest. Returns false on cache miss.
func (c *RedisAnalyticsCache) Get(ctx context.Context, tenantID uint, name string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(tenantID, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get analytics snapshot: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry is treated as a miss; the caller recomputes.
		c.logger.Warnw("discarding corrupt analytics snapshot", "tenant_id", tenantID, "name", name, "error", err)
		return false, nil
	}
	return true, nil
}

func (c *RedisAnalyticsCache) Set(ctx context.Context, tenantID uint, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics snapshot: %w", err)
	}

	ttl := baseSnapshotTTL + time.Duration(rand.Int64N(int64(snapshotTTLJitter)))
	if err := c.client.Set(ctx, c.key(tenantID, name), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set analytics snapshot: %w", err)
	}
	return nil
}

func (c *RedisAnalyticsCache) Invalidate(ctx context.Context, tenantID uint, name string) error {
	if err := c.client.Del(ctx, c.key(tenantID, name)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate analytics snapshot: %w", err)
	}
	return nil
}

// NoopAnalyticsCache satisfies AnalyticsCache when redis is not configured.
type NoopAnalyticsCache struct{}

func (NoopAnalyticsCache) Get(context.Context, uint, string, interface{}) (bool, error) {
	return false, nil
}
func (NoopAnalyticsCache) Set(context.Context, uint, string, interface{}) error  { return nil }
func (NoopAnalyticsCache) Invalidate(context.Context, uint, string) error        { return nil }
