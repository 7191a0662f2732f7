package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelsite/services/metrics"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	roomListKeyPrefix  = "rooms:list:"
	dashboardKeyPrefix = "dashboard:stats:"

	roomListTTL  = 5 * time.Minute
	dashboardTTL = 2 * time.Minute
)

// Cache stores derived read models. Availability answers are never stored here.
type Cache interface {
	// Get decodes the cached value into target and reports whether it was present.
	Get(ctx context.Context, key string, target interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// DeletePattern drops every key matching a redis glob pattern.
	DeletePattern(ctx context.Context, pattern string) error
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Get lấy data từ Redis
func (c *RedisCache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	cachedData, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.IncCacheMiss()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, fmt.Errorf("decode cache %s: %w", key, err)
	}
	metrics.IncCacheHit()
	return true, nil
}

// Set lưu dữ liệu vào Redis
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// DeletePattern xóa cache Redis theo pattern
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// NoopCache is used when redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NoopCache) DeletePattern(context.Context, string) error { return nil }
