package services

import (
	"context"
	"time"

	json "github.com/goccy/go-json"

	"credd/internal/models"
	"credd/internal/providers"
	"credd/internal/structures"
)

const (
	cacheKeyPrefix  = "scan:"
	DefaultCacheTTL = time.Hour
)

// ResultCache keeps encoded scan results keyed by fingerprint. Every backend failure
// is logged and reported as a miss, so callers never see a cache error on reads.
type ResultCache struct {
	backend providers.CacheProviderInterface
	logger  providers.Logger
	ttl     time.Duration
}

func NewResultCache(conf *structures.Config, backend providers.CacheProviderInterface, logger providers.Logger) *ResultCache {
	ttl := conf.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{backend: backend, logger: logger, ttl: ttl}
}

func cacheKey(fp string) string {
	return cacheKeyPrefix + fp
}

func (c *ResultCache) Get(ctx context.Context, fp string) (*models.ScanResult, bool) {
	raw, ok, err := c.backend.Get(ctx, cacheKey(fp))
	if err != nil {
		c.logger.Warnf(providers.TypePipeline, "cache read %s failed: %v", fp, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var r models.ScanResult
	if err := json.Unmarshal(raw, &r); err != nil {
		c.logger.Warnf(providers.TypePipeline, "cache entry %s is unreadable: %v", fp, err)
		return nil, false
	}
	return &r, true
}

// Put stores r for the cache's TTL. The returned error is informational only.
func (c *ResultCache) Put(ctx context.Context, fp string, r *models.ScanResult) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := c.backend.Set(ctx, cacheKey(fp), raw, c.ttl); err != nil {
		c.logger.Warnf(providers.TypePipeline, "cache write %s failed: %v", fp, err)
		return err
	}
	return nil
}

func (c *ResultCache) Clear(ctx context.Context) error {
	return c.backend.Clear(ctx)
}

func (c *ResultCache) Stats(ctx context.Context) (providers.CacheStats, error) {
	return c.backend.Stats(ctx)
}

func (c *ResultCache) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}
