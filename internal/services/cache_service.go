package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"landmark-catalog/internal/config"
	apperrors "landmark-catalog/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	DeleteByPattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}

type RedisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(cfg *config.CacheConfig) (*RedisCacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCacheService{client: client}, nil
}

func NewRedisCacheServiceWithClient(client *redis.Client) *RedisCacheService {
	return &RedisCacheService{client: client}
}

// Get returns ErrCacheMiss when the key does not exist.
func (c *RedisCacheService) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, cacheError("get", err)
}

func (c *RedisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return cacheError("set", c.client.Set(ctx, key, jsonData, expiration).Err())
}

func (c *RedisCacheService) Delete(ctx context.Context, key string) error {
	return cacheError("delete", c.client.Del(ctx, key).Err())
}

// Incr atomically increments the integer stored at key, starting from 0.
func (c *RedisCacheService) Incr(ctx context.Context, key string) (int64, error) {
	value, err := c.client.Incr(ctx, key).Result()
	return value, cacheError("incr", err)
}

func (c *RedisCacheService) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return cacheError("delete", err)
		}
	}
	return cacheError("scan", iter.Err())
}

func (c *RedisCacheService) Ping(ctx context.Context) error {
	return cacheError("ping", c.client.Ping(ctx).Err())
}

func (c *RedisCacheService) Close() error {
	return c.client.Close()
}

func cacheError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: redis %s: %w", apperrors.ErrCacheError, op, err)
}
