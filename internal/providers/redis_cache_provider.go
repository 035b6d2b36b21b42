package providers

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"credd/internal/structures"
)

// redisNamespace prefixes every key so Clear never touches foreign data in a shared database.
const redisNamespace = "credd:"

type RedisCacheProvider struct {
	client *redis.Client
	hits   atomic.Int64
	misses atomic.Int64
}

func NewRedisCacheProvider(conf structures.RedisConfig) *RedisCacheProvider {
	return &RedisCacheProvider{
		client: redis.NewClient(&redis.Options{
			Addr:         conf.Addr,
			Password:     conf.Password,
			DB:           conf.DB,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		}),
	}
}

func (c *RedisCacheProvider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, redisNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	c.hits.Add(1)
	return val, true, nil
}

func (c *RedisCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, redisNamespace+key, value, time.Duration(ttlSeconds(ttl))*time.Second).Err()
}

// Clear removes every namespaced key with SCAN + DEL so the server is never blocked by KEYS.
func (c *RedisCacheProvider) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisNamespace+"*", 500).Iterator()
	batch := make([]string, 0, 500)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.client.Del(ctx, batch...).Err()
	}
	return nil
}

func (c *RedisCacheProvider) Stats(ctx context.Context) (CacheStats, error) {
	var entries int64
	iter := c.client.Scan(ctx, 0, redisNamespace+"*", 500).Iterator()
	for iter.Next(ctx) {
		entries++
	}
	if err := iter.Err(); err != nil {
		return CacheStats{Backend: CacheDriverRedis}, err
	}
	return CacheStats{
		Backend: CacheDriverRedis,
		Entries: entries,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

func (c *RedisCacheProvider) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCacheProvider) Close() error {
	return c.client.Close()
}
