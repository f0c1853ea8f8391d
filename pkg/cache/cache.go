// Package cache is the Redis-backed application cache.
//
// Every helper no-ops safely when Redis is unreachable, so the admin keeps
// working (uncached) if the cache tier is down.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veyralabs/veyra/config"
	"github.com/veyralabs/veyra/pkg/metrics"
)

// RDB is the shared Redis client; nil when Connect failed.
var RDB *redis.Client

// Ctx is the background context used for cache operations.
var Ctx = context.Background()

// Connect initialises the Redis client and verifies it with a ping.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil // mark unavailable so Get/Set/Del no-op
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get unmarshals the cached value under key into dest.
// Returns true only on a hit.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.Inc()
		return false
	}
	if json.Unmarshal([]byte(val), dest) != nil {
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

// Set stores value under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Del removes keys.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// Forget is an alias for Del on a single key.
func Forget(key string) error { return Del(key) }
