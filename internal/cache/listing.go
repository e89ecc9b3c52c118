// Package cache holds the cached view of the invoice listing and its
// invalidation side channel.
package cache

import (
	"context"
	"sync"
	"time"

	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
)

// ListingPath is the rendered view the cache shadows.
const ListingPath = "/dashboard/invoices"

const defaultListingTTL = 5 * time.Minute

// ListingCache shadows the invoice listing view. InvalidateListing is
// fire and forget: it never reports failure back to the mutation that
// triggered it.
type ListingCache interface {
	Get(ctx context.Context) ([]invoicedomain.Invoice, bool)
	Set(ctx context.Context, invoices []invoicedomain.Invoice)
	InvalidateListing(ctx context.Context)
}

type memoryListingCache struct {
	mu      sync.Mutex
	entries []invoicedomain.Invoice
	valid   bool
	expires time.Time
	ttl     time.Duration
}

// NewMemoryListingCache returns an in-process listing cache for
// single-node deployments.
func NewMemoryListingCache(ttl time.Duration) ListingCache {
	if ttl <= 0 {
		ttl = defaultListingTTL
	}
	return &memoryListingCache{ttl: ttl}
}

func (c *memoryListingCache) Get(ctx context.Context) ([]invoicedomain.Invoice, bool) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || time.Now().After(c.expires) {
		return nil, false
	}
	out := make([]invoicedomain.Invoice, len(c.entries))
	copy(out, c.entries)
	return out, true
}

func (c *memoryListingCache) Set(ctx context.Context, invoices []invoicedomain.Invoice) {
	_ = ctx
	entries := make([]invoicedomain.Invoice, len(invoices))
	copy(entries, invoices)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.valid = true
	c.expires = time.Now().Add(c.ttl)
}

func (c *memoryListingCache) InvalidateListing(ctx context.Context) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.valid = false
}
