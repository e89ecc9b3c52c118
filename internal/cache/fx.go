package cache

import (
	"github.com/billfold/billfold/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewListingCache picks the redis-backed cache when an address is
// configured, otherwise the in-process one.
func NewListingCache(cfg config.Config, log *zap.Logger) ListingCache {
	if cfg.RedisAddr == "" {
		return NewMemoryListingCache(defaultListingTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return NewRedisListingCache(client, log, defaultListingTTL)
}

// Module provides the invoice listing cache.
var Module = fx.Module("cache",
	fx.Provide(NewListingCache),
)
