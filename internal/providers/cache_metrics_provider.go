package providers

import (
	"context"
	"time"

	"credd/internal/structures"
)

// MetricsCacheProvider wraps a CacheProviderInterface and counts hits, misses and
// backend errors on every Get call.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, ok, err := c.inner.Get(ctx, key)
	switch {
	case err != nil:
		c.metrics.IncCacheErrors()
	case ok:
		c.metrics.IncCacheHits()
	default:
		c.metrics.IncCacheMisses()
	}
	return val, ok, err
}

func (c *MetricsCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, value, ttl)
	if err != nil {
		c.metrics.IncCacheErrors()
	}
	return err
}

func (c *MetricsCacheProvider) Clear(ctx context.Context) error {
	return c.inner.Clear(ctx)
}

func (c *MetricsCacheProvider) Stats(ctx context.Context) (CacheStats, error) {
	return c.inner.Stats(ctx)
}

func (c *MetricsCacheProvider) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

func (c *MetricsCacheProvider) Close() error {
	return c.inner.Close()
}

// NewInstrumentedCacheProvider creates a cache provider wrapped with metrics instrumentation.
// The disabled driver is returned unwrapped so it does not count phantom misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if conf.Cache.Driver == CacheDriverNone {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
