package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/ports"
)

const keyPrefix = "lapeco:"

// RedisCache implements ports.Cache on Redis.
type RedisCache struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisCache connects to url and verifies the connection with a ping.
func NewRedisCache(url string, log *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Successfully connected to Redis")
	return &RedisCache{
		client: client,
		log:    log,
	}, nil
}

// Get returns ports.ErrCacheMiss when key is absent.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%s: %w", key, ports.ErrCacheMiss)
	}
	return val, err
}

// Set stores value under key for expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	strVal, err := encode(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, strVal, expiration).Err()
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, keyPrefix+key).Err()
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping() error {
	return c.client.Ping(context.Background()).Err()
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying client for readiness checks.
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// New connects to Redis when url is set and falls back to the local cache
// otherwise or when Redis is unreachable.
func New(url string, log *zap.Logger) ports.Cache {
	if url != "" {
		rc, err := NewRedisCache(url, log)
		if err == nil {
			return rc
		}
		log.Warn("Redis unavailable, using local cache", zap.Error(err))
	}
	return NewLocalCache(time.Minute, log)
}
