package caching

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mlmarch:cache:"

type RedisCachingService struct {
	client *redis.Client
}

func NewRedisCachingService(c *redis.Client) *RedisCachingService {
	return &RedisCachingService{
		client: c,
	}
}

func (svc *RedisCachingService) Get(ctx context.Context, key string) (string, error) {
	val, err := svc.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (svc *RedisCachingService) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	cmd := svc.client.Set(ctx, keyPrefix+key, value, ttl)
	return cmd.Err()
}

func (svc *RedisCachingService) Delete(ctx context.Context, key string) error {
	cmd := svc.client.Del(ctx, keyPrefix+key)
	return cmd.Err()
}
