package cachedresults

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	redisstore "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tgvmax/pkg/config"
)

var ErrRedisNotConnected = errors.New("redis cache backend selected but no redis client is connected")

// Cache holds raw responses keyed by request URL. Entries expire after the
// configured duration, whichever store backs it.
type Cache struct {
	Cache *cache.Cache[string]

	Backend    string
	Expiration time.Duration
}

func NewMemory(expiration time.Duration, cleanupInterval time.Duration) *Cache {
	client := gocache.New(expiration, cleanupInterval)
	memoryStore := gocachestore.NewGoCache(client, store.WithExpiration(expiration))

	return &Cache{
		Cache:      cache.New[string](memoryStore),
		Backend:    "memory",
		Expiration: expiration,
	}
}

func NewRedis(client *redis.Client, expiration time.Duration) *Cache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Cache{
		Cache:      cache.New[string](redisStore),
		Backend:    "redis",
		Expiration: expiration,
	}
}

// New builds the cache selected by the configuration. The "none" backend
// returns a nil cache, which every method treats as always missing.
func New(cfg config.CacheConfig, redisClient *redis.Client) (*Cache, error) {
	switch cfg.Backend {
	case "none":
		return nil, nil
	case "redis":
		if redisClient == nil {
			return nil, ErrRedisNotConnected
		}
		return NewRedis(redisClient, cfg.Expiration.Duration()), nil
	case "memory", "":
		return NewMemory(cfg.Expiration.Duration(), cfg.CleanupInterval.Duration()), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}

	value, err := c.Cache.Get(ctx, key)
	if err != nil {
		return "", false
	}

	return value, true
}

func (c *Cache) Set(ctx context.Context, key string, value string) {
	if c == nil {
		return
	}

	if err := c.Cache.Set(ctx, key, value, store.WithExpiration(c.Expiration)); err != nil {
		log.Warn().Err(err).Str("backend", c.Backend).Msg("Failed to store cached response")
	}
}

func (c *Cache) Clear(ctx context.Context) error {
	if c == nil {
		return nil
	}

	return c.Cache.Clear(ctx)
}
