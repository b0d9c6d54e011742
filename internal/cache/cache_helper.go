package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache errors
var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache not found")
)

// fillTimeout bounds the background write after a cache miss
const fillTimeout = 5 * time.Second

// scanBatch is the COUNT hint for SCAN and the size of each UNLINK
const scanBatch = 100

// CacheConfig defines the key prefix and lifetime of one family of entries
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Programs change rarely and are read on every catalog page
	ProgramCacheConfig = CacheConfig{
		TTL:    10 * time.Minute,
		Prefix: "program:",
	}

	// Course detail pages keyed by slug
	CourseCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "course:",
	}

	// Current semester lookups run on every registration request
	CalendarCacheConfig = CacheConfig{
		TTL:    2 * time.Minute,
		Prefix: "calendar:",
	}
)

// CacheHelper stores JSON values under one prefix. A nil client turns every
// operation into a miss or a no-op.
type CacheHelper struct {
	client *redis.Client
	config CacheConfig
}

func NewCacheHelper(client *redis.Client, config CacheConfig) *CacheHelper {
	return &CacheHelper{
		client: client,
		config: config,
	}
}

// GetCacheKey prepends the helper prefix
func (c *CacheHelper) GetCacheKey(key string) string {
	return c.config.Prefix + key
}

// Get unmarshals the entry at key into dest
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.GetCacheKey(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheNotFound
	case err != nil:
		return fmt.Errorf("cache get %s: %w", c.config.Prefix, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

// Set stores value as JSON. A zero ttl falls back to the helper TTL.
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if ttl == 0 {
		ttl = c.config.TTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.GetCacheKey(key), data, ttl).Err()
}

// Delete removes the given keys in one round trip
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	cacheKeys := make([]string, len(keys))
	for i, key := range keys {
		cacheKeys[i] = c.GetCacheKey(key)
	}
	return c.client.Del(ctx, cacheKeys...).Err()
}

// InvalidatePattern unlinks every key matching pattern under the prefix. The SCAN walk
// completes before anything is removed.
func (c *CacheHelper) InvalidatePattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}

	fullPattern := c.GetCacheKey(pattern)
	var keys []string
	iter := c.client.Scan(ctx, 0, fullPattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %s: %w", fullPattern, err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Unlink(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("cache unlink %s: %w", fullPattern, err)
		}
	}

	if len(keys) > 0 {
		slog.DebugContext(ctx, "Cache pattern invalidated", "pattern", fullPattern, "keys", len(keys))
	}
	return nil
}

// CacheOrExecute serves dest from the cache, or runs fetch and fills the entry in the
// background. Fetched values reach dest through a JSON round trip, same as hits.
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheNotFound) && !errors.Is(err, ErrCacheNotAvailable) {
		slog.WarnContext(ctx, "Cache read failed, loading from database", "error", err, "key", c.GetCacheKey(key))
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if c.client != nil {
		go func() {
			fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
			defer cancel()
			if err := c.Set(fillCtx, key, value, 0); err != nil {
				slog.Error("Cache fill failed", "error", err, "key", c.GetCacheKey(key))
			}
		}()
	}

	return json.Unmarshal(data, dest)
}

// CacheManager groups the helpers used by the repositories
type CacheManager struct {
	Program  *CacheHelper
	Course   *CacheHelper
	Calendar *CacheHelper

	client *redis.Client
}

// NewCacheManager builds every helper. A nil client disables caching.
func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Program:  NewCacheHelper(client, ProgramCacheConfig),
		Course:   NewCacheHelper(client, CourseCacheConfig),
		Calendar: NewCacheHelper(client, CalendarCacheConfig),
		client:   client,
	}
}

// HealthCheck pings redis
func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.client == nil {
		return ErrCacheNotAvailable
	}
	if err := cm.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}
	return nil
}

// Enabled reports whether a redis client backs the helpers
func (cm *CacheManager) Enabled() bool {
	return cm.client != nil
}
