// Package cache holds public display data (project lists, locations) for a
// short time. Cache failures are logged and otherwise ignored.
package cache

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/db/redis"
	"github.com/octabyte/emaar-web/utils"
	"github.com/octabyte/emaar-web/utils/logger"
)

const DefaultTTL = time.Minute

type Cache interface {
	// Get decodes the cached value into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) bool { return false }

func (Noop) Set(context.Context, string, any, time.Duration) {}

func (Noop) Delete(context.Context, string) {}

type RedisCache struct {
	client *goredis.Client
	prefix string
}

func NewRedisCache(client *goredis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "emaar:cache:"
	}
	return &RedisCache{client: client, prefix: prefix}
}

func (r *RedisCache) Get(ctx context.Context, key string, dst any) bool {
	data, found, err := redis.GetBytes(ctx, r.client, r.prefix+key)
	if err != nil {
		logger.LogWarn("cache get", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found {
		return false
	}
	if err := utils.BytesToStruct(data, dst); err != nil {
		logger.LogWarn("cache decode", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	data, err := utils.StructToBytes(value)
	if err != nil {
		logger.LogWarn("cache encode", zap.String("key", key), zap.Error(err))
		return
	}
	if err := redis.Set(ctx, r.client, r.prefix+key, data, ttl); err != nil {
		logger.LogWarn("cache set", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisCache) Delete(ctx context.Context, key string) {
	if err := redis.Del(ctx, r.client, r.prefix+key); err != nil {
		logger.LogWarn("cache delete", zap.String("key", key), zap.Error(err))
	}
}

// Fetch returns the cached value for key, or calls load and caches a
// successful result. Load errors are returned uncached.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	c.Set(ctx, key, v, ttl)
	return v, nil
}
