package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel error type for cache lookups.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss reports that no value is stored under the requested key.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache stores serialized parse results keyed by content hash.
// Values are opaque strings; callers own the encoding.
type Cache interface {
	// Get returns ErrCacheMiss when nothing is stored under key.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A zero ttl keeps the value until evicted.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete is a no-op for unknown keys.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
