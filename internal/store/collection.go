package store

import (
	"context"
	"encoding/json"
	"fmt"

	applog "cottoncare/internal/log"
)

// Collection is a JSON list of T stored under a single key.
//
// Load never leaves the caller empty-handed: an absent key is seeded and persisted,
// and an unreadable backend or payload yields the seed for that call together with
// the error. Seed must return a fresh slice on every call. Without a seed, an absent
// key reads as empty and nothing is written until the first Save.
type Collection[T any] struct {
	s    *Store
	key  string
	seed func() []T
}

func NewCollection[T any](s *Store, key string, seed func() []T) *Collection[T] {
	return &Collection[T]{s: s, key: key, seed: seed}
}

func (c *Collection[T]) Key() string { return c.key }

func (c *Collection[T]) defaults() []T {
	if c.seed == nil {
		return []T{}
	}
	if d := c.seed(); d != nil {
		return d
	}
	return []T{}
}

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.s.kv.Get(ctx, c.key)
	if err != nil {
		applog.Error(nil, "store.load.fail", err, map[string]any{"key": c.key})
		return c.defaults(), fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok {
		if c.seed == nil {
			return []T{}, nil
		}
		def := c.defaults()
		if err := c.write(ctx, def); err != nil {
			applog.Error(nil, "store.seed.fail", err, map[string]any{"key": c.key})
			return def, fmt.Errorf("seed %s: %w", c.key, err)
		}
		applog.Info(nil, "store.seed", map[string]any{"key": c.key, "count": len(def)})
		return def, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		applog.Error(nil, "store.decode.fail", err, map[string]any{"key": c.key})
		return c.defaults(), fmt.Errorf("decode %s: %w: %v", c.key, ErrCorrupt, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if err := c.write(ctx, items); err != nil {
		applog.Warn(nil, "store.save.fail", err, map[string]any{"key": c.key})
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// Update runs fn on the current list and saves the result while holding the key lock.
// A failed Load aborts without writing so fallback data never overwrites stored data.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	unlock := c.s.locks.lock(c.key)
	defer unlock()

	cur, err := c.Load(ctx)
	if err != nil {
		return cur, err
	}
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	return next, c.Save(ctx, next)
}

// Drop removes the key so the next Load reseeds it.
func (c *Collection[T]) Drop(ctx context.Context) error {
	return c.s.kv.Delete(ctx, c.key)
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.s.kv.Set(ctx, c.key, b)
}
