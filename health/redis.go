package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type RedisCheck struct {
	client *redis.Client
}

func NewRedisCheck(client *redis.Client) *RedisCheck {
	return &RedisCheck{client: client}
}

func (r *RedisCheck) IsReady(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCheck) Name() string {
	return "redis"
}
