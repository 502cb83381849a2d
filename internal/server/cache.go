package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/g6conv/internal/config"
	"github.com/matzehuels/g6conv/pkg/cache"
)

const redisDialTimeout = 3 * time.Second

// NewCache builds the conversion cache described by cfg: an in-process
// LRU, tiered over Redis when redis_addr is set. cache_size 0 disables
// caching. An unreachable Redis is logged and the LRU is used alone.
func NewCache(ctx context.Context, cfg config.ServerConfig, logger *log.Logger) (cache.Cache, cache.Keyer, error) {
	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if cfg.CachePrefix != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.CachePrefix+":")
	}
	if cfg.CacheSize == 0 {
		return cache.NewNullCache(), keyer, nil
	}

	lru, err := cache.NewLRUCache(cfg.CacheSize)
	if err != nil {
		return nil, nil, err
	}
	if cfg.RedisAddr == "" {
		logger.Debug("cache", "backend", "lru", "size", cfg.CacheSize)
		return lru, keyer, nil
	}

	redis, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: redisDialTimeout,
	})
	if err != nil {
		logger.Warn("redis unavailable, using in-process cache only", "addr", cfg.RedisAddr, "error", err)
		return lru, keyer, nil
	}
	logger.Debug("cache", "backend", "lru+redis", "size", cfg.CacheSize, "redis", cfg.RedisAddr)
	return cache.NewTieredCache(lru, redis, cfg.CacheTTL), keyer, nil
}
