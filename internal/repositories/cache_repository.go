package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface is the Redis-backed store for the login lockout
// counters, the logout deny-list and the cached asset stats and category
// distribution. Get returns ErrNotFound for a missing key.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error

	// counters
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
