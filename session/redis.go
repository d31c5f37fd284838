package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	redisdb "github.com/octabyte/emaar-web/db/redis"
	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/utils/logger"
)

type RedisStoreConfig struct {
	Prefix string
	TTL    time.Duration
}

// RedisStore shares sessions between replicas. Keys expire with the
// session ttl or the token's exp, whichever comes first.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, cfg RedisStoreConfig) *RedisStore {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "emaar:session:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: cfg.TTL, now: time.Now}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) models.Session {
	data, found, err := redisdb.GetBytes(ctx, r.client, r.key(id))
	if err != nil {
		logger.LogWarn("session lookup failed", zap.String("session_id", id), zap.Error(err))
		return models.Session{}
	}
	if !found {
		return models.Session{}
	}
	return decode(id, data, r.now())
}

func (r *RedisStore) Set(ctx context.Context, id string, s models.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	ttl := ttlFor(s, r.ttl, r.now())
	if ttl <= 0 {
		return r.Clear(ctx, id)
	}
	if err := redisdb.Set(ctx, r.client, r.key(id), data, ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, id string) error {
	if err := redisdb.Del(ctx, r.client, r.key(id)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
