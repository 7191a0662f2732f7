package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil without error when no address is configured.
func ConnectRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	if cfg.Redis.Address == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.User,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
