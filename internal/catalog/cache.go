package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ssg-pdp/internal/types"
)

// PriceFetcher looks up the price of a product by SKU
type PriceFetcher interface {
	FetchProductPrice(ctx context.Context, sku string) (*types.RemoteProductPrice, error)
}

// priceEntry is one lookup; done is closed once product and err are set
type priceEntry struct {
	done    chan struct{}
	product *types.RemoteProductPrice
	err     error
}

// PriceCache memoizes price lookups by uppercased SKU.
// The first request for a SKU starts the only fetch for it; every other
// request, concurrent or later, shares that outcome. Prices and "no product"
// results live as long as the cache; failures are only shared with the
// requests that were waiting when the fetch failed.
type PriceCache struct {
	fetcher PriceFetcher
	logger  types.Logger

	mutex   sync.Mutex
	entries map[string]*priceEntry
}

// NewPriceCache creates an empty cache in front of fetcher
func NewPriceCache(fetcher PriceFetcher, logger types.Logger) *PriceCache {
	return &PriceCache{
		fetcher: fetcher,
		logger:  logger,
		entries: make(map[string]*priceEntry),
	}
}

// Get returns the cached price for sku, fetching it on first use.
// A nil product with a nil error means the catalog has no such product.
// Cancelling ctx stops the wait but not the shared fetch.
func (c *PriceCache) Get(ctx context.Context, sku string) (*types.RemoteProductPrice, error) {
	key := strings.ToUpper(sku)

	c.mutex.Lock()
	entry, exists := c.entries[key]
	if !exists {
		entry = &priceEntry{done: make(chan struct{})}
		c.entries[key] = entry
	}
	c.mutex.Unlock()

	if !exists {
		c.logger.Debugf("Price cache miss for %s", key)
		go c.fill(context.WithoutCancel(ctx), key, entry)
	}

	select {
	case <-entry.done:
		return entry.product, entry.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fill runs the fetch for entry. A failed fetch is handed to the callers
// already waiting on it and then dropped, so the next Get tries again.
func (c *PriceCache) fill(ctx context.Context, key string, entry *priceEntry) {
	defer close(entry.done)
	defer func() {
		if r := recover(); r != nil {
			entry.product, entry.err = nil, fmt.Errorf("%w: price lookup panicked: %v", ErrFallbackUnavailable, r)
		}
		if entry.err != nil {
			c.logger.Warnf("Price lookup for %s failed: %v", key, entry.err)
			c.forget(key, entry)
		}
	}()

	entry.product, entry.err = c.fetcher.FetchProductPrice(ctx, key)
}

func (c *PriceCache) forget(key string, entry *priceEntry) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.entries[key] == entry {
		delete(c.entries, key)
	}
}

// Size returns the number of SKUs the cache holds
func (c *PriceCache) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}
