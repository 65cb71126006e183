package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"cottoncare/internal/config"
)

// Open builds the backend named by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case "", "sqlite":
		kv, err := OpenSQLite(cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return New(kv), nil
	case "redis":
		kv, err := OpenRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		}, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return New(kv), nil
	case "memory":
		return New(NewMemory()), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
