package cache

import (
	"context"
	"time"
)

// Cache is the contract for the read-through cache layer.
// Implementations must treat a miss as (false, nil), not an error.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// Returns found=false on a miss, leaving dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching the glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
