package adapters

import (
	"context"
	"strings"

	"ssg-pdp/internal/types"
	"ssg-pdp/utils"

	"github.com/PuerkitoBio/goquery"
)

// BaseAdapter provides page loading and the common document helpers.
// Pages are fetched over plain HTTP, or rendered in a headless browser
// when the configuration asks for it.
type BaseAdapter struct {
	config        *types.Config        // Configuration settings (timeouts, browser settings, etc.)
	logger        types.Logger         // Structured logging interface
	httpClient    *utils.HTTPClient    // HTTP client for standard requests
	browserClient *utils.BrowserClient // Headless browser client for rendered pages
}

// NewBaseAdapter creates a new base adapter with initialized HTTP and browser clients.
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config:        config,
		logger:        logger,
		httpClient:    utils.NewHTTPClient(config, logger),
		browserClient: utils.NewBrowserClient(config, logger),
	}
}

// GetPageContent retrieves the HTML content of a page using either HTTP client or headless browser.
// The choice between HTTP and browser is determined by the UseHeadlessBrowser configuration.
func (b *BaseAdapter) GetPageContent(ctx context.Context, url string) (string, error) {
	if b.config.UseHeadlessBrowser {
		return b.browserClient.GetPageContent(ctx, url)
	}

	// Pre-rendered pages are complete without scripts, so plain HTTP is enough
	body, err := b.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractMetaTags folds every <meta name=...> tag into a name -> content map.
// Later tags with the same name replace earlier ones.
func ExtractMetaTags(doc types.Node) map[string]string {
	metadata := make(map[string]string)
	if doc == nil {
		return metadata
	}

	for _, tag := range doc.FindAll("meta[name]") {
		name, _ := tag.Attr("name")
		content, _ := tag.Attr("content")
		metadata[name] = content
	}

	return metadata
}

// Close cleans up resources
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}
