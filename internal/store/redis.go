package store

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
)

// Redis stores each collection under prefix+key as a plain string value.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

func OpenRedis(ctx context.Context, opts *redis.Options, prefix string) (*Redis, error) {
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	log.Printf("[store] redis ready addr=%s db=%d", opts.Addr, opts.DB)
	return &Redis{rdb: rdb, prefix: prefix}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.prefix+key).Err()
}

func (r *Redis) Close() error { return r.rdb.Close() }
