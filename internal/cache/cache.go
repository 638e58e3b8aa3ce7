// Package cache is a thin versioned read-cache on Redis. Readers include a
// version number in their keys; writers bump the version so stale entries are
// simply never read again and expire on their own.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Cache struct {
	client *redis.Client
}

// New connects to Redis. When Redis is unreachable the returned cache is a
// no-op so the service keeps running without it.
func New(address string) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr: address,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Warn().Err(err).Msg("redis not available, running without cache")
		return &Cache{}
	}

	log.Info().Str("addr", address).Msg("redis connected")
	return &Cache{client: client}
}

// Get unmarshals the cached value into dest. found is false on miss or when
// the cache is disabled.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// GetVersion returns the current version for a key, 0 when unset.
func (c *Cache) GetVersion(ctx context.Context, key string) int64 {
	if c.client == nil {
		return 0
	}
	v, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return v
}

// IncrementVersion bumps the version so readers skip stale entries.
func (c *Cache) IncrementVersion(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache version bump failed")
	}
}

func (c *Cache) Close() {
	if c.client != nil {
		_ = c.client.Close()
	}
}
