package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient is an optional read-through cache for public listings
// (coupon offers). A nil *RedisClient disables caching everywhere.
type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("redis connected", zap.String("addr", addr))

	return &RedisClient{client: rdb, log: log}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// GetJSON returns the cached payload for key, or redis.Nil if absent.
func (r *RedisClient) GetJSON(ctx context.Context, key string) ([]byte, error) {
	if r == nil {
		return nil, redis.Nil
	}
	return r.client.Get(ctx, key).Bytes()
}

func (r *RedisClient) SetJSON(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if r == nil {
		return
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisClient) Invalidate(ctx context.Context, keys ...string) {
	if r == nil {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("cache invalidate failed", zap.Error(err))
	}
}

// IsMiss reports whether err is a cache miss rather than a failure.
func IsMiss(err error) bool {
	return err == redis.Nil
}
