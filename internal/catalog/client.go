package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ssg-pdp/internal/types"

	"golang.org/x/time/rate"
)

// ErrFallbackUnavailable means the catalog service could not answer a price lookup
var ErrFallbackUnavailable = errors.New("catalog price fallback unavailable")

// graphQLRequest is the body of a GraphQL POST
type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type productPriceResponse struct {
	Data struct {
		Products []*types.RemoteProductPrice `json:"products"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Client queries the catalog service GraphQL endpoint
type Client struct {
	httpClient  *http.Client
	endpoint    string
	headers     map[string]string
	rateLimiter *rate.Limiter
	logger      types.Logger
}

// NewClient creates a catalog client from the catalog settings in config
func NewClient(config *types.Config, logger types.Logger) *Client {
	limit := rate.Inf
	if config.CatalogRateLimit > 0 {
		limit = rate.Limit(config.CatalogRateLimit)
	}
	burst := config.CatalogBurst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		endpoint:    config.CatalogEndpoint,
		headers:     config.CatalogHeaders,
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger,
	}
}

// FetchProductPrice runs the price query for a SKU.
// A response without a product entry returns (nil, nil); transport and
// GraphQL failures wrap ErrFallbackUnavailable. There are no retries.
func (c *Client) FetchProductPrice(ctx context.Context, sku string) (*types.RemoteProductPrice, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("%w: no catalog endpoint configured", ErrFallbackUnavailable)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(graphQLRequest{
		Query:     ProductPriceQuery,
		Variables: map[string]string{"sku": sku},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	c.logger.Debugf("Fetching catalog price for %s", sku)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFallbackUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrFallbackUnavailable, resp.StatusCode)
	}

	var result productPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrFallbackUnavailable, err)
	}

	if len(result.Errors) > 0 {
		messages := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrFallbackUnavailable, strings.Join(messages, "; "))
	}

	if len(result.Data.Products) == 0 || result.Data.Products[0] == nil {
		c.logger.Debugf("Catalog has no product for %s", sku)
		return nil, nil
	}

	return result.Data.Products[0], nil
}
