// Package storetest provides store backends that fail on demand.
package storetest

import (
	"context"
	"errors"
	"sync"

	"cottoncare/internal/store"
)

var ErrInjected = errors.New("injected store failure")

// Faulty wraps a KV and fails reads or writes while the matching flag is set.
type Faulty struct {
	store.KV

	mu        sync.Mutex
	failGet   bool
	failSet   bool
	failOnKey string
}

func NewFaulty(kv store.KV) *Faulty { return &Faulty{KV: kv} }

// FailGets toggles read failures. An empty key matches every key.
func (f *Faulty) FailGets(on bool, key string) {
	f.mu.Lock()
	f.failGet, f.failOnKey = on, key
	f.mu.Unlock()
}

// FailSets toggles write failures. An empty key matches every key.
func (f *Faulty) FailSets(on bool, key string) {
	f.mu.Lock()
	f.failSet, f.failOnKey = on, key
	f.mu.Unlock()
}

func (f *Faulty) match(key string) bool { return f.failOnKey == "" || f.failOnKey == key }

func (f *Faulty) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failGet && f.match(key)
	f.mu.Unlock()
	if fail {
		return nil, false, ErrInjected
	}
	return f.KV.Get(ctx, key)
}

func (f *Faulty) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failSet && f.match(key)
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.KV.Set(ctx, key, value)
}
