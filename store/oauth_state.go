package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateTTL = time.Minute

type OAuthStateStore interface {
	Create(ctx context.Context, key string) error
	IsStateExists(ctx context.Context, key string) (bool, error)
}

type RedisStateStore struct {
	client *redis.Client
}

func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{
		client: client,
	}
}

func (s *RedisStateStore) Create(ctx context.Context, key string) error {
	cmd := s.client.SetNX(ctx, key, "1", stateTTL)
	return cmd.Err()
}

// IsStateExists consumes the state: a second call for the same key reports false.
func (s *RedisStateStore) IsStateExists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisStateStore) Shutdown(ctx context.Context) error {
	return s.client.Close()
}
