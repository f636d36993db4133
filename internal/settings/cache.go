package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"bazaar-be/internal/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	DefaultCacheKey = "bazaar:checkout:settings"
	DefaultCacheTTL = time.Minute
)

// RedisCache is a read-through Source shared by all replicas. Redis
// errors fall through to the wrapped source.
type RedisCache struct {
	client *redis.Client
	source Source
	ttl    time.Duration
	key    string

	hits   int64
	misses int64
}

type CacheOption func(*RedisCache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithKey(key string) CacheOption {
	return func(c *RedisCache) {
		if key != "" {
			c.key = key
		}
	}
}

func NewRedisCache(client *redis.Client, source Source, opts ...CacheOption) *RedisCache {
	c := &RedisCache{
		client: client,
		source: source,
		ttl:    DefaultCacheTTL,
		key:    DefaultCacheKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) Load(ctx context.Context) (*Settings, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("cache", "Settings"),
		zap.String("key", c.key),
	)

	val, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var s Settings
		if jsonErr := json.Unmarshal(val, &s); jsonErr == nil {
			atomic.AddInt64(&c.hits, 1)
			return &s, nil
		}
		log.Warn("corrupt cached settings, reloading")
	case errors.Is(err, redis.Nil):
	default:
		log.Warn("settings cache read failed", zap.Error(err))
	}
	atomic.AddInt64(&c.misses, 1)

	s, err := c.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(s)
	if err == nil {
		err = c.client.Set(ctx, c.key, data, c.ttl).Err()
	}
	if err != nil {
		log.Warn("settings cache write failed", zap.Error(err))
	}

	return s, nil
}

// Invalidate drops the cached document so the next Load hits the source.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

func (c *RedisCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}
