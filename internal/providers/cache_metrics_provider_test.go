package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credd/internal/structures"
)

type cacheMetricsTestInner struct {
	data   map[string][]byte
	getErr error
	setErr error
	closed int
}

func (c *cacheMetricsTestInner) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}
func (c *cacheMetricsTestInner) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}
func (c *cacheMetricsTestInner) Clear(_ context.Context) error {
	c.data = map[string][]byte{}
	return nil
}
func (c *cacheMetricsTestInner) Stats(_ context.Context) (CacheStats, error) {
	return CacheStats{Backend: "test", Entries: int64(len(c.data))}, nil
}
func (c *cacheMetricsTestInner) Ping(_ context.Context) error { return nil }
func (c *cacheMetricsTestInner) Close() error {
	c.closed++
	return nil
}

func TestMetricsCacheProvider_CloseReachesBackend(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	cache := &MetricsCacheProvider{inner: inner, metrics: &mockMetrics{}}

	require.NoError(t, cache.Close())
	assert.Equal(t, 1, inner.closed)
}

func TestInstrumentedCacheProvider_CloseShutsRedisClient(t *testing.T) {
	conf := &structures.Config{Cache: structures.CacheConfig{
		Driver: CacheDriverRedis,
		TTL:    time.Hour,
		Redis:  structures.RedisConfig{Addr: "127.0.0.1:1"},
	}}
	cache := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, &mockMetrics{})

	require.NoError(t, cache.Close())
	assert.ErrorIs(t, cache.Ping(context.Background()), redis.ErrClosed)
}

func TestMetricsCacheProvider_Hit(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"key1": []byte("val1")}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok, err := cache.Get(context.Background(), "key1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("val1"), val)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 0, metrics.misses)
}

func TestMetricsCacheProvider_Miss(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok, err := cache.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_ErrorsCounted(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}, getErr: errors.New("down"), setErr: errors.New("down")}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	_, ok, err := cache.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, cache.Set(context.Background(), "k", []byte("v"), time.Minute))

	assert.Equal(t, 2, metrics.errors)
	assert.Equal(t, 0, metrics.misses)
}

func TestMetricsCacheProvider_SetDelegates(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	require.NoError(t, cache.Set(context.Background(), "key2", []byte("val2"), time.Minute))

	assert.Equal(t, []byte("val2"), inner.data["key2"])

	stats, err := cache.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Entries)

	require.NoError(t, cache.Clear(context.Background()))
	assert.Empty(t, inner.data)
}

func TestMetricsCacheProvider_MultipleOperations(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"a": []byte("1")}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}
	ctx := context.Background()

	_, _, _ = cache.Get(ctx, "a") // hit
	_, _, _ = cache.Get(ctx, "b") // miss
	_, _, _ = cache.Get(ctx, "a") // hit
	_, _, _ = cache.Get(ctx, "c") // miss

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 2, metrics.misses)
}

func TestNewInstrumentedCacheProvider_DisabledIsUnwrapped(t *testing.T) {
	conf := &structures.Config{Cache: structures.CacheConfig{Driver: CacheDriverNone}}
	c := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, &mockMetrics{})
	assert.IsType(t, &noopCache{}, c)

	conf.Cache.Driver = CacheDriverMemory
	conf.Cache.Size = 1
	c = NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, &mockMetrics{})
	assert.IsType(t, &MetricsCacheProvider{}, c)
}
