package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceEntry struct {
	BodyTypeID int64   `json:"bodyTypeId"`
	Price      float64 `json:"price"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(rdb, "carwash", ttl), mr
}

func TestCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "price:1:2", priceEntry{BodyTypeID: 2, Price: 1500}))
	assert.True(t, mr.Exists("carwash:price:1:2"))
	assert.Equal(t, time.Minute, mr.TTL("carwash:price:1:2"))

	var got priceEntry
	found, err := c.Get(ctx, "price:1:2", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, priceEntry{BodyTypeID: 2, Price: 1500}, got)
}

func TestCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	var got priceEntry
	found, err := c.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1))
	mr.FastForward(11 * time.Second)

	var got int
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_DecodeError(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("carwash:broken", "not-json"))

	var got priceEntry
	_, err := c.Get(context.Background(), "broken", &got)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCache_Delete(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 2))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	assert.False(t, mr.Exists("carwash:a"))
	assert.False(t, mr.Exists("carwash:b"))
}

func TestCache_BackendDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	err := c.Set(context.Background(), "k", 1)
	assert.ErrorIs(t, err, ErrBackend)
}
