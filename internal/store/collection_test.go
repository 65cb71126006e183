package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cottoncare/internal/store"
	"cottoncare/internal/store/storetest"
)

type item struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

func seedItems() []item { return []item{{ID: "a", Qty: 1}, {ID: "b", Qty: 2}} }

func backends(t *testing.T) map[string]store.KV {
	t.Helper()

	sq, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	mr := miniredis.RunT(t)
	rd, err := store.OpenRedis(context.Background(), &redis.Options{Addr: mr.Addr()}, "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rd.Close() })

	return map[string]store.KV{
		"memory": store.NewMemory(),
		"sqlite": sq,
		"redis":  rd,
	}
}

func TestLoadSeedsEmptyKey(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := store.NewCollection(store.New(kv), "items", seedItems)

			got, err := col.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, seedItems(), got)

			_, ok, err := kv.Get(ctx, "items")
			require.NoError(t, err)
			assert.True(t, ok, "seed should be persisted")
		})
	}
}

func TestLoadWithoutSeedDoesNotWrite(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := store.NewCollection[item](store.New(kv), "cart:visitor", nil)

			got, err := col.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NotNil(t, got)

			_, ok, err := kv.Get(ctx, "cart:visitor")
			require.NoError(t, err)
			assert.False(t, ok, "absent key without a seed stays absent")

			require.NoError(t, col.Save(ctx, []item{{ID: "a", Qty: 1}}))
			_, ok, err = kv.Get(ctx, "cart:visitor")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			col := store.NewCollection(store.New(kv), "items", seedItems)

			require.NoError(t, col.Save(ctx, []item{{ID: "z", Qty: 9}}))
			got, err := col.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []item{{ID: "z", Qty: 9}}, got)

			// an explicitly saved empty list is not reseeded
			require.NoError(t, col.Save(ctx, nil))
			got, err = col.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestRedisKeysArePrefixed(t *testing.T) {
	mr := miniredis.RunT(t)
	rd, err := store.OpenRedis(context.Background(), &redis.Options{Addr: mr.Addr()}, "cc:")
	require.NoError(t, err)
	defer rd.Close()

	col := store.NewCollection(store.New(rd), "products", seedItems)
	_, err = col.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, mr.Exists("cc:products"))
}

func TestLoadFallsBackOnReadFailure(t *testing.T) {
	ctx := context.Background()
	faulty := storetest.NewFaulty(store.NewMemory())
	col := store.NewCollection(store.New(faulty), "items", seedItems)
	require.NoError(t, col.Save(ctx, []item{{ID: "kept", Qty: 3}}))

	faulty.FailGets(true, "")
	got, err := col.Load(ctx)
	assert.ErrorIs(t, err, storetest.ErrInjected)
	assert.Equal(t, seedItems(), got)

	// the fallback applies to that call only
	faulty.FailGets(false, "")
	got, err = col.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "kept", Qty: 3}}, got)
}

func TestLoadFallsBackOnCorruptPayload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, "items", []byte("{not json")))

	col := store.NewCollection(store.New(kv), "items", seedItems)
	got, err := col.Load(ctx)
	assert.True(t, errors.Is(err, store.ErrCorrupt))
	assert.Equal(t, seedItems(), got)
}

func TestUpdateDoesNotOverwriteOnLoadFailure(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, "items", []byte("garbage")))

	col := store.NewCollection(store.New(kv), "items", seedItems)
	_, err := col.Update(ctx, func(cur []item) ([]item, error) {
		return append(cur, item{ID: "c"}), nil
	})
	require.Error(t, err)

	raw, _, _ := kv.Get(ctx, "items")
	assert.Equal(t, "garbage", string(raw))
}

func TestUpdateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	col := store.NewCollection(store.New(store.NewMemory()), "counter", func() []item { return []item{{ID: "n"}} })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := col.Update(ctx, func(cur []item) ([]item, error) {
				cur[0].Qty++
				return cur, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := col.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, got[0].Qty)
}

func TestUpdateCallbackErrorSkipsSave(t *testing.T) {
	ctx := context.Background()
	col := store.NewCollection(store.New(store.NewMemory()), "items", seedItems)
	boom := fmt.Errorf("nope")

	_, err := col.Update(ctx, func(cur []item) ([]item, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	got, err := col.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
