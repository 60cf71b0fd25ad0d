package cachedresults

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/tgvmax/pkg/config"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute, time.Minute)

	_, found := c.Get(ctx, "https://example.org/records?offset=0")
	assert.False(t, found)

	c.Set(ctx, "https://example.org/records?offset=0", `{"results":[]}`)

	value, found := c.Get(ctx, "https://example.org/records?offset=0")
	require.True(t, found)
	assert.Equal(t, `{"results":[]}`, value)

	require.NoError(t, c.Clear(ctx))
	_, found = c.Get(ctx, "https://example.org/records?offset=0")
	assert.False(t, found)
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(20*time.Millisecond, 5*time.Millisecond)

	c.Set(ctx, "key", "value")
	time.Sleep(60 * time.Millisecond)

	_, found := c.Get(ctx, "key")
	assert.False(t, found)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	c := NewRedis(client, 90*time.Minute)
	c.Set(ctx, "key", "value")

	value, found := c.Get(ctx, "key")
	require.True(t, found)
	assert.Equal(t, "value", value)
	assert.Equal(t, 90*time.Minute, server.TTL("key"))

	server.FastForward(91 * time.Minute)
	_, found = c.Get(ctx, "key")
	assert.False(t, found)
}

func TestNilCacheAlwaysMisses(t *testing.T) {
	var c *Cache

	c.Set(context.Background(), "key", "value")
	_, found := c.Get(context.Background(), "key")

	assert.False(t, found)
	assert.NoError(t, c.Clear(context.Background()))
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default().Cache

	c, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Backend)

	cfg.Backend = "none"
	c, err = New(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	cfg.Backend = "redis"
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, ErrRedisNotConnected)
}
