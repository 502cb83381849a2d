// Package cache memoizes conversion results.
//
// A conversion is a pure function of (input format, output format, line),
// so its output can be cached indefinitely. The HTTP server uses this to
// avoid re-decoding lines that clients send repeatedly.
//
// # Backends
//
//   - [NullCache]: stores nothing; used when caching is disabled
//   - [LRUCache]: bounded in-process cache (hashicorp/golang-lru)
//   - [RedisCache]: shared cache for multiple server instances (go-redis)
//   - [TieredCache]: an LRU in front of a slower shared backend
//
// # Keys
//
// Keys come from a [Keyer] so that deployments sharing one Redis can
// namespace themselves with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional TTL.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
