package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credd/internal/structures"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

func cacheConfig(driver string, size int) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Driver: driver,
			Size:   size,
			TTL:    time.Hour,
			Redis:  structures.RedisConfig{Addr: "127.0.0.1:1"},
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(CacheDriverNone, 10), &cacheTestLogger{})
	_, ok, err := c.Get(context.Background(), "any")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeUsesDefault(t *testing.T) {
	c := NewCacheProvider(cacheConfig(CacheDriverMemory, 0), &cacheTestLogger{})
	assert.IsType(t, &CacheProvider{}, c)
}

func TestCacheProvider_RedisDriver(t *testing.T) {
	c := NewCacheProvider(cacheConfig(CacheDriverRedis, 0), &cacheTestLogger{})
	assert.IsType(t, &RedisCacheProvider{}, c)
	_ = c.(*RedisCacheProvider).Close()
}

func TestCacheProvider_SetAndGet(t *testing.T) {
	ctx := context.Background()
	c := NewCacheProvider(cacheConfig(CacheDriverMemory, 1), &cacheTestLogger{})

	require.NoError(t, c.Set(ctx, "key1", []byte("value1"), time.Minute))
	val, ok, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value1"), val)
}

func TestCacheProvider_Miss(t *testing.T) {
	c := NewCacheProvider(cacheConfig(CacheDriverMemory, 1), &cacheTestLogger{})

	val, ok, err := c.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	ctx := context.Background()
	c := NewCacheProvider(cacheConfig(CacheDriverMemory, 1), &cacheTestLogger{})

	require.NoError(t, c.Set(ctx, "key1", []byte("v1"), time.Minute))
	require.NoError(t, c.Set(ctx, "key1", []byte("v2"), time.Minute))

	val, ok, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
}

func TestCacheProvider_ClearAndStats(t *testing.T) {
	ctx := context.Background()
	c := NewCacheProvider(cacheConfig(CacheDriverMemory, 1), &cacheTestLogger{})

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	_, _, _ = c.Get(ctx, "a")
	_, _, _ = c.Get(ctx, "zzz")

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, CacheDriverMemory, stats.Backend)
	assert.Equal(t, int64(2), stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)

	require.NoError(t, c.Clear(ctx))
	stats, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
}

func TestNoopCache_AlwaysMiss(t *testing.T) {
	ctx := context.Background()
	c := &noopCache{}
	require.NoError(t, c.Set(ctx, "key1", []byte("value1"), time.Minute))

	val, ok, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewCacheProvider(cacheConfig(CacheDriverMemory, 1), &cacheTestLogger{})

	require.NoError(t, c.Set(ctx, "key1", []byte("value1"), time.Second))
	val, ok, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value1"), val)

	time.Sleep(2100 * time.Millisecond)

	_, ok, err = c.Get(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheProvider_UnreachableFails(t *testing.T) {
	c := NewRedisCacheProvider(structures.RedisConfig{Addr: "127.0.0.1:1"})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, ok, err := c.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.Error(t, c.Ping(ctx))
}

func TestTTLSeconds(t *testing.T) {
	assert.Equal(t, 1, ttlSeconds(0))
	assert.Equal(t, 1, ttlSeconds(300*time.Millisecond))
	assert.Equal(t, 3600, ttlSeconds(time.Hour))
}
