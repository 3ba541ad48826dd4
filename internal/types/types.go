package types

import "time"

// Price record discriminators
const (
	PriceTypeSimple = "simple"
	PriceTypeRange  = "range"
)

// ParsedPrice is the normalized price read from a page or rebuilt from the catalog.
// Simple prices use Value, range prices use Minimum and Maximum.
type ParsedPrice struct {
	Type     string  `json:"type"`
	Value    float64 `json:"value,omitempty"`
	Minimum  float64 `json:"minimum,omitempty"`
	Maximum  float64 `json:"maximum,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// IsRange reports whether the price is a range record
func (p *ParsedPrice) IsRange() bool {
	return p != nil && p.Type == PriceTypeRange
}

// OptionItem is a single selectable value of an option
type OptionItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Title    string `json:"title,omitempty"`
	Value    string `json:"value"`
	Selected string `json:"selected"`
	InStock  string `json:"inStock"`
}

// OptionSpec is a purchasable option such as a color or size
type OptionSpec struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Typename string       `json:"typename,omitempty"`
	Label    string       `json:"label"`
	Title    string       `json:"title,omitempty"`
	Required string       `json:"required"`
	Multiple string       `json:"multiple,omitempty"`
	Items    []OptionItem `json:"items"`
}

// RawProduct is the record assembled from a pre-rendered page.
// Metadata holds every <meta name> tag of the page; the typed fields
// extracted from the page body take precedence over it.
type RawProduct struct {
	Name        string            `json:"name,omitempty"`
	SKU         string            `json:"sku,omitempty"`
	Images      []string          `json:"images"`
	Description string            `json:"description,omitempty"`
	Options     []OptionSpec      `json:"options"`
	Price       *ParsedPrice      `json:"price,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Meta returns the metadata value for key, or "" when absent
func (p *RawProduct) Meta(key string) string {
	if p == nil || p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}

// Money is an amount in a currency
type Money struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// Amount wraps Money the way the catalog service does
type Amount struct {
	Amount Money `json:"amount"`
}

// ProductViewPrice is a regular/final price pair with its display roles
type ProductViewPrice struct {
	Roles   []string `json:"roles,omitempty"`
	Regular Amount   `json:"regular"`
	Final   Amount   `json:"final"`
}

// PriceRange holds the lowest and highest prices of a complex product
type PriceRange struct {
	Minimum ProductViewPrice `json:"minimum"`
	Maximum ProductViewPrice `json:"maximum"`
}

// RemoteProductPrice is a product entry returned by the catalog price query
type RemoteProductPrice struct {
	Price      *ProductViewPrice `json:"price,omitempty"`
	PriceRange *PriceRange       `json:"priceRange,omitempty"`
}

// ProductImage is an image in the product view
type ProductImage struct {
	URL   string   `json:"url"`
	Label string   `json:"label"`
	Roles []string `json:"roles"`
}

// ProductViewOptionValue is a value of a product view option
type ProductViewOptionValue struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Value    string `json:"value"`
	Selected string `json:"selected"`
	InStock  string `json:"inStock"`
}

// ProductViewOption is an option in the product view
type ProductViewOption struct {
	ID       string                   `json:"id"`
	Type     string                   `json:"type"`
	Typename string                   `json:"typename,omitempty"`
	Title    string                   `json:"title"`
	Required string                   `json:"required"`
	Multiple string                   `json:"multiple,omitempty"`
	Values   []ProductViewOptionValue `json:"values"`
}

// ProductView is the canonical product record consumed by product detail rendering
type ProductView struct {
	Name             string              `json:"name"`
	SKU              string              `json:"sku"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"shortDescription"`
	Images           []ProductImage      `json:"images"`
	IsBundle         bool                `json:"isBundle"`
	AddToCartAllowed bool                `json:"addToCartAllowed"`
	InStock          bool                `json:"inStock"`
	URLKey           string              `json:"urlKey"`
	URL              string              `json:"url"`
	ProductType      string              `json:"productType"`
	Typename         string              `json:"__typename"`
	Price            *ProductViewPrice   `json:"price,omitempty"`
	PriceRange       *PriceRange         `json:"priceRange,omitempty"`
	Options          []ProductViewOption `json:"options,omitempty"`
}

// PageLocation is the address of the page being converted
type PageLocation struct {
	Path string
	Href string
}

// Config holds the configuration for the extractor
type Config struct {
	RequestDelay          time.Duration
	MaxRetries            int
	Timeout               time.Duration
	MaxConcurrentRequests int
	UseHeadlessBrowser    bool
	UserAgent             string

	// Catalog service used as the price fallback
	CatalogEndpoint  string
	CatalogHeaders   map[string]string
	CatalogRateLimit float64
	CatalogBurst     int
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RequestDelay:          1 * time.Second,
		MaxRetries:            3,
		Timeout:               30 * time.Second,
		MaxConcurrentRequests: 5,
		UseHeadlessBrowser:    false,
		UserAgent:             "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		CatalogHeaders:        map[string]string{},
		CatalogRateLimit:      10,
		CatalogBurst:          5,
	}
}

// Node is the document capability the extraction code works against.
// Lookups that find nothing return nil.
type Node interface {
	// FindOne returns the first descendant matching selector
	FindOne(selector string) Node

	// FindAll returns every descendant matching selector in document order
	FindAll(selector string) []Node

	// Children returns the direct children matching selector
	Children(selector string) []Node

	// Text returns the trimmed text content
	Text() string

	// Attr returns the value of an attribute
	Attr(name string) (string, bool)

	// NextSibling returns the next element sibling
	NextSibling() Node

	// Parent returns the parent element
	Parent() Node

	// Closest returns the nearest ancestor-or-self matching selector
	Closest(selector string) Node
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
