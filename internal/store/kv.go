// Package store persists JSON-encoded collections in a flat key-value backend.
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrCorrupt marks stored content that could not be decoded.
var ErrCorrupt = errors.New("stored collection is unreadable")

// KV is the minimal backend contract. Get reports ok=false when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store wraps a backend with per-key locks so read-modify-write cycles on the same
// key do not interleave inside one process.
type Store struct {
	kv    KV
	locks keyedMutex
}

func New(kv KV) *Store {
	return &Store{kv: kv, locks: keyedMutex{locks: map[string]*keyLock{}}}
}

func (s *Store) KV() KV { return s.kv }

func (s *Store) Close() error { return s.kv.Close() }

type keyLock struct {
	mu   sync.Mutex
	refs int
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// lock blocks until key is free and returns its release func.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l := k.locks[key]
	if l == nil {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
