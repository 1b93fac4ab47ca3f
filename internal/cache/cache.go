// Package cache provides a small key/value cache port with Redis and
// in-memory implementations.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values with a time-to-live
type Cache interface {
	// Get returns the value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
