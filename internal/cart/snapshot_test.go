package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisSnapshotStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisSnapshotStore(client, time.Hour)
}

func sampleItems() []LineItem {
	items := Reduce(nil, AddItem{Entry: entry("p1", 2, "L", "Red", "Red", "Blue")})
	e := entry("p2", 1, "")
	e.UnitPrice = decimal.RequireFromString("12.50")
	return Reduce(items, AddItem{Entry: e})
}

func TestMarshalSnapshot(t *testing.T) {
	t.Run("Nil is an empty array", func(t *testing.T) {
		data, err := MarshalSnapshot(nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))

		items, err := UnmarshalSnapshot(data)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("Field names", func(t *testing.T) {
		data, err := MarshalSnapshot(Reduce(nil, AddItem{Entry: entry("p1", 2, "L", "Red")}))
		require.NoError(t, err)

		s := string(data)
		for _, field := range []string{`"productId"`, `"unitPrice"`, `"originalBasePrice"`, `"quantity"`, `"size"`, `"colorOptions"`, `"notes"`} {
			assert.Contains(t, s, field)
		}
	})

	t.Run("Round trip", func(t *testing.T) {
		items := sampleItems()
		data, err := MarshalSnapshot(items)
		require.NoError(t, err)

		back, err := UnmarshalSnapshot(data)
		require.NoError(t, err)
		assertSameItems(t, items, back)
		assert.True(t, ComputeTotals(items).TotalPrice.Equal(ComputeTotals(back).TotalPrice))
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		_, err := UnmarshalSnapshot([]byte(`{"productId":1}`))
		assert.Error(t, err)
	})
}

func TestMemorySnapshotStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySnapshotStore()

	_, err := store.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, "k", sampleItems()))
	items, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRedisSnapshotStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Save and load", func(t *testing.T) {
		mr, store := setupRedis(t)

		items := sampleItems()
		require.NoError(t, store.Save(ctx, "abc", items))

		assert.True(t, mr.Exists("cart:abc"))
		assert.Equal(t, time.Hour, mr.TTL("cart:abc"))

		back, err := store.Load(ctx, "abc")
		require.NoError(t, err)
		assertSameItems(t, items, back)
	})

	t.Run("Missing key", func(t *testing.T) {
		_, store := setupRedis(t)

		_, err := store.Load(ctx, "nope")
		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("Expired snapshot", func(t *testing.T) {
		mr, store := setupRedis(t)
		require.NoError(t, store.Save(ctx, "abc", sampleItems()))

		mr.FastForward(2 * time.Hour)

		_, err := store.Load(ctx, "abc")
		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		mr, store := setupRedis(t)
		require.NoError(t, store.Save(ctx, "abc", sampleItems()))

		require.NoError(t, store.Delete(ctx, "abc"))
		assert.False(t, mr.Exists("cart:abc"))
	})

	t.Run("Server down", func(t *testing.T) {
		mr, store := setupRedis(t)
		mr.Close()

		assert.Error(t, store.Save(ctx, "abc", sampleItems()))
		_, err := store.Load(ctx, "abc")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("Store over redis", func(t *testing.T) {
		_, store := setupRedis(t)

		st, err := LoadStore(ctx, "sess", store, nil)
		require.NoError(t, err)
		_, err = st.AddToCart(ctx, entry("p1", 2, ""))
		require.NoError(t, err)

		reloaded, err := LoadStore(ctx, "sess", store, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, reloaded.TotalItems())

		require.NoError(t, st.ClearCart(ctx))
		reloaded, err = LoadStore(ctx, "sess", store, nil)
		require.NoError(t, err)
		assert.Empty(t, reloaded.Items())
	})
}
