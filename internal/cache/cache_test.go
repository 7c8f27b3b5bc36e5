package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenCacheFirstWriterWins(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTokenCache()

	stored, err := c.SetIfAbsent(ctx, "yellowleopard753", "first", time.Hour)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = c.SetIfAbsent(ctx, "yellowleopard753", "second", time.Hour)
	require.NoError(t, err)
	assert.False(t, stored)

	token, ok, err := c.Get(ctx, "yellowleopard753")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", token)
}

func TestMemoryTokenCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryTokenCache()
	c.now = func() time.Time { return now }

	_, err := c.SetIfAbsent(ctx, "lazywolf342", "old", time.Minute)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, ok, err := c.Get(ctx, "lazywolf342")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := c.SetIfAbsent(ctx, "lazywolf342", "new", time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestMemoryTokenCacheIgnoresNonPositiveTTL(t *testing.T) {
	c := NewMemoryTokenCache()
	stored, err := c.SetIfAbsent(context.Background(), "u", "t", 0)
	require.NoError(t, err)
	assert.False(t, stored)
}

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisTokenCacheFirstWriterWins(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	c := NewRedisTokenCache(client, "shop-test:token:")
	client.Del(ctx, "shop-test:token:yellowleopard753")
	defer client.Del(ctx, "shop-test:token:yellowleopard753")

	_, ok, err := c.Get(ctx, "yellowleopard753")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := c.SetIfAbsent(ctx, "yellowleopard753", "first", time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = c.SetIfAbsent(ctx, "yellowleopard753", "second", time.Minute)
	require.NoError(t, err)
	assert.False(t, stored)

	token, ok, err := c.Get(ctx, "yellowleopard753")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", token)

	ttl, err := client.TTL(ctx, "shop-test:token:yellowleopard753").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
