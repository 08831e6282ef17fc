package cache

import (
	"context"
	"time"
)

// Store is a string key-value store with per-key expiry. Implementations
// report a missing or expired key as ok == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Take atomically reads and deletes key. Of several concurrent callers
	// at most one sees ok == true.
	Take(ctx context.Context, key string) (string, bool, error)
	Ping(ctx context.Context) error
	Close() error
}
