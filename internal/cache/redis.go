package cache

import (
	"context"
	"encoding/json"
	"time"

	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listingKey = "views:" + ListingPath

type redisListingCache struct {
	client *redis.Client
	log    *zap.Logger
	ttl    time.Duration
}

// NewRedisListingCache returns a listing cache shared across nodes.
// Redis faults degrade to cache misses; they are logged, never
// surfaced to the mutation path.
func NewRedisListingCache(client *redis.Client, log *zap.Logger, ttl time.Duration) ListingCache {
	if ttl <= 0 {
		ttl = defaultListingTTL
	}
	return &redisListingCache{
		client: client,
		log:    log.Named("cache.listing"),
		ttl:    ttl,
	}
}

func (c *redisListingCache) Get(ctx context.Context) ([]invoicedomain.Invoice, bool) {
	payload, err := c.client.Get(ctx, listingKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("listing cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var invoices []invoicedomain.Invoice
	if err := json.Unmarshal(payload, &invoices); err != nil {
		c.log.Warn("listing cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return invoices, true
}

func (c *redisListingCache) Set(ctx context.Context, invoices []invoicedomain.Invoice) {
	payload, err := json.Marshal(invoices)
	if err != nil {
		c.log.Warn("listing cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, listingKey, payload, c.ttl).Err(); err != nil {
		c.log.Warn("listing cache write failed", zap.Error(err))
	}
}

func (c *redisListingCache) InvalidateListing(ctx context.Context) {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		c.log.Warn("listing cache invalidation failed", zap.Error(err))
	}
}
