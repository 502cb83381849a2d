package cache

import (
	"context"
	"errors"
	"time"
)

// TieredCache reads through a fast front cache to a shared back cache and
// writes to both. Back-end read errors degrade to a miss so an unavailable
// Redis only costs a recomputation.
type TieredCache struct {
	front Cache
	back  Cache
	ttl   time.Duration
}

// NewTieredCache layers front over back. frontTTL bounds how long a value
// promoted from back stays in front.
func NewTieredCache(front, back Cache, frontTTL time.Duration) *TieredCache {
	return &TieredCache{front: front, back: back, ttl: frontTTL}
}

// Get checks front, then back, promoting back hits into front.
func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := c.front.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, ok, err := c.back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, nil
	}
	_ = c.front.Set(ctx, key, data, c.ttl)
	return data, true, nil
}

// Set writes to both layers.
func (c *TieredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	frontTTL := c.ttl
	if ttl > 0 && (frontTTL == 0 || ttl < frontTTL) {
		frontTTL = ttl
	}
	return errors.Join(c.front.Set(ctx, key, data, frontTTL), c.back.Set(ctx, key, data, ttl))
}

// Delete removes key from both layers.
func (c *TieredCache) Delete(ctx context.Context, key string) error {
	return errors.Join(c.front.Delete(ctx, key), c.back.Delete(ctx, key))
}

// Close closes both layers.
func (c *TieredCache) Close() error {
	return errors.Join(c.front.Close(), c.back.Close())
}

// Ensure TieredCache implements Cache.
var _ Cache = (*TieredCache)(nil)
