package caching

import (
	"context"
	"time"
)

// CachingService stores string values under keys. A missing key reads as "".
type CachingService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
