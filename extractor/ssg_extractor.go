package extractor

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"ssg-pdp/adapters"
	"ssg-pdp/internal/types"
)

// State is the progress of extracting one page
type State int

const (
	// StateNotEligible means the page is not a pre-rendered product page; use the dynamic path
	StateNotEligible State = iota
	// StateExtracting means the page is being read
	StateExtracting
	// StateResolved means a merged product record was produced
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateNotEligible:
		return "not_eligible"
	case StateExtracting:
		return "extracting"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Where the price of a resolved product came from
const (
	PriceSourcePage    = "page"
	PriceSourceCatalog = "catalog"
	PriceSourceNone    = "none"
)

// Result is the outcome of extracting one page
type Result struct {
	State       State
	Product     *types.RawProduct
	PriceSource string

	// FallbackErr is set when the catalog lookup failed and the product has no price
	FallbackErr error
}

// PriceLookup is the price fallback used when the page has no usable price
type PriceLookup interface {
	Get(ctx context.Context, sku string) (*types.RemoteProductPrice, error)
}

// SSGExtractor turns pre-rendered product pages into product records
type SSGExtractor struct {
	adapter *adapters.SSGAdapter
	prices  PriceLookup
	logger  types.Logger

	mutex   sync.RWMutex
	current *types.RawProduct
}

// NewSSGExtractor creates a new SSG extractor that falls back to prices for missing page prices
func NewSSGExtractor(config *types.Config, prices PriceLookup, logger types.Logger) *SSGExtractor {
	return &SSGExtractor{
		adapter: adapters.NewSSGAdapter(config, logger),
		prices:  prices,
		logger:  logger,
	}
}

// Adapter returns the page adapter used to load documents
func (e *SSGExtractor) Adapter() *adapters.SSGAdapter {
	return e.adapter
}

// Extract reads a product page into a merged product record.
// Pages without a product details block or sku meta tag are not eligible.
// The call never fails: a failed price fallback leaves the product without
// a price and is reported in Result.FallbackErr.
func (e *SSGExtractor) Extract(ctx context.Context, doc types.Node) *Result {
	startTime := time.Now()

	if !adapters.IsSSGPage(doc) {
		e.logger.Debug("Page has no sku meta tag, not a pre-rendered product page")
		return &Result{State: StateNotEligible, PriceSource: PriceSourceNone}
	}

	result := &Result{State: StateExtracting, PriceSource: PriceSourceNone}

	details := e.adapter.ParseProductDetails(doc)
	if details == nil {
		return &Result{State: StateNotEligible, PriceSource: PriceSourceNone}
	}

	metadata := adapters.ExtractMetaTags(doc)
	product := &types.RawProduct{
		Name:        details.Name,
		SKU:         metadata["sku"],
		Images:      details.Images,
		Description: details.Description,
		Options:     details.Options,
		Metadata:    metadata,
	}

	if price := adapters.ParsePrice(details.PriceText); price != nil {
		product.Price = price
		result.PriceSource = PriceSourcePage
	} else {
		e.logger.Infof("No price on page for %s, using catalog fallback", product.SKU)
		price, err := e.fallbackPrice(ctx, product.SKU)
		switch {
		case err != nil:
			e.logger.Warnf("Price fallback for %s failed: %v", product.SKU, err)
			result.FallbackErr = err
		case price != nil:
			product.Price = price
			result.PriceSource = PriceSourceCatalog
		default:
			e.logger.Warnf("Catalog returned no price for %s", product.SKU)
		}
	}

	e.mutex.Lock()
	e.current = product
	e.mutex.Unlock()

	result.State = StateResolved
	result.Product = product

	e.logger.Debugf("Extracted %s in %v (price source: %s)", product.SKU, time.Since(startTime), result.PriceSource)
	return result
}

// Current returns the most recently resolved product, or nil
func (e *SSGExtractor) Current() *types.RawProduct {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.current
}

// fallbackPrice looks the SKU up in the catalog and reduces it to a page price.
// Regular and final amounts collapse to the lower of the two.
func (e *SSGExtractor) fallbackPrice(ctx context.Context, sku string) (*types.ParsedPrice, error) {
	if e.prices == nil {
		return nil, errors.New("no price fallback configured")
	}

	remote, err := e.prices.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, nil
	}

	var price *types.ParsedPrice
	if remote.Price != nil {
		price = &types.ParsedPrice{
			Type:     types.PriceTypeSimple,
			Value:    lowestAmount(remote.Price),
			Currency: remote.Price.Regular.Amount.Currency,
		}
	}
	// a range wins over a simple price when both are present
	if remote.PriceRange != nil {
		price = &types.ParsedPrice{
			Type:     types.PriceTypeRange,
			Minimum:  lowestAmount(&remote.PriceRange.Minimum),
			Maximum:  lowestAmount(&remote.PriceRange.Maximum),
			Currency: remote.PriceRange.Minimum.Regular.Amount.Currency,
		}
	}
	return price, nil
}

func lowestAmount(price *types.ProductViewPrice) float64 {
	return math.Min(price.Regular.Amount.Value, price.Final.Amount.Value)
}

// Close cleans up resources
func (e *SSGExtractor) Close() {
	if e.adapter != nil {
		e.adapter.Close()
	}
}
