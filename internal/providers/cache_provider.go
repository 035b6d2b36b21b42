package providers

import (
	"context"
	"errors"
	"time"
	"unsafe"

	"github.com/coocood/freecache"

	"credd/internal/structures"
)

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
	CacheDriverNone   = "none"

	defaultCacheSizeMB = 64
)

type CacheStats struct {
	Backend string `json:"backend"`
	Entries int64  `json:"entries"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
}

// CacheProviderInterface is a byte-oriented key/value store with per-entry expiry.
// A miss is (nil, false, nil); a non-nil error means the backend itself failed.
type CacheProviderInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (CacheStats, error)
	Ping(ctx context.Context) error
	Close() error
}

type CacheProvider struct {
	cache *freecache.Cache
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	switch conf.Cache.Driver {
	case CacheDriverNone:
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	case CacheDriverRedis:
		logger.Infof(TypeApp, "Cache initialized: redis at %s, TTL=%s", conf.Cache.Redis.Addr, conf.Cache.TTL)
		return NewRedisCacheProvider(conf.Cache.Redis)
	}

	size := conf.Cache.Size
	if size <= 0 {
		size = defaultCacheSizeMB
	}
	logger.Infof(TypeApp, "Cache initialized: %dMB in memory, TTL=%s", size, conf.Cache.TTL)

	return &CacheProvider{cache: freecache.NewCache(size * 1024 * 1024)}
}

// unsafeStringToBytes converts string to []byte without allocation.
// freecache copies keys internally and never writes to them.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func ttlSeconds(ttl time.Duration) int {
	return max(int(ttl.Seconds()), 1)
}

func (c *CacheProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *CacheProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return c.cache.Set(unsafeStringToBytes(key), value, ttlSeconds(ttl))
}

func (c *CacheProvider) Clear(_ context.Context) error {
	c.cache.Clear()
	return nil
}

func (c *CacheProvider) Stats(_ context.Context) (CacheStats, error) {
	return CacheStats{
		Backend: CacheDriverMemory,
		Entries: c.cache.EntryCount(),
		Hits:    c.cache.HitCount(),
		Misses:  c.cache.MissCount(),
	}, nil
}

func (c *CacheProvider) Ping(_ context.Context) error { return nil }

func (c *CacheProvider) Close() error { return nil }

type noopCache struct{}

func (n *noopCache) Get(_ context.Context, _ string) ([]byte, bool, error) { return nil, false, nil }
func (n *noopCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}
func (n *noopCache) Clear(_ context.Context) error { return nil }
func (n *noopCache) Stats(_ context.Context) (CacheStats, error) {
	return CacheStats{Backend: CacheDriverNone}, nil
}
func (n *noopCache) Ping(_ context.Context) error { return nil }
func (n *noopCache) Close() error                 { return nil }
