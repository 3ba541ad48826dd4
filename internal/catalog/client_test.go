package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ssg-pdp/internal/types"
)

func newTestClient(endpoint string) *Client {
	config := types.DefaultConfig()
	config.CatalogEndpoint = endpoint
	config.CatalogHeaders = map[string]string{"x-api-key": "test-key"}
	return NewClient(config, logrus.New())
}

func catalogServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		var req graphQLRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, ProductPriceQuery, req.Query)
		assert.Equal(t, "WID-1", req.Variables["sku"])

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestClient_FetchProductPrice_SimplePrice(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `{"data":{"products":[{"price":{
		"roles":["visible"],
		"regular":{"amount":{"currency":"EUR","value":10}},
		"final":{"amount":{"currency":"EUR","value":9}}}}]}}`)
	defer server.Close()

	product, err := newTestClient(server.URL).FetchProductPrice(context.Background(), "WID-1")

	require.NoError(t, err)
	require.NotNil(t, product)
	require.NotNil(t, product.Price)
	assert.Nil(t, product.PriceRange)
	assert.Equal(t, []string{"visible"}, product.Price.Roles)
	assert.Equal(t, types.Money{Currency: "EUR", Value: 10}, product.Price.Regular.Amount)
	assert.Equal(t, types.Money{Currency: "EUR", Value: 9}, product.Price.Final.Amount)
}

func TestClient_FetchProductPrice_PriceRange(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `{"data":{"products":[{"priceRange":{
		"minimum":{"regular":{"amount":{"currency":"USD","value":5}},"final":{"amount":{"currency":"USD","value":4}}},
		"maximum":{"regular":{"amount":{"currency":"USD","value":50}},"final":{"amount":{"currency":"USD","value":45}}}}}]}}`)
	defer server.Close()

	product, err := newTestClient(server.URL).FetchProductPrice(context.Background(), "WID-1")

	require.NoError(t, err)
	require.NotNil(t, product.PriceRange)
	assert.Nil(t, product.Price)
	assert.Equal(t, 4.0, product.PriceRange.Minimum.Final.Amount.Value)
	assert.Equal(t, 50.0, product.PriceRange.Maximum.Regular.Amount.Value)
}

func TestClient_FetchProductPrice_NoProduct(t *testing.T) {
	for name, body := range map[string]string{
		"empty list":   `{"data":{"products":[]}}`,
		"null product": `{"data":{"products":[null]}}`,
		"no data":      `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := catalogServer(t, http.StatusOK, body)
			defer server.Close()

			product, err := newTestClient(server.URL).FetchProductPrice(context.Background(), "WID-1")

			require.NoError(t, err)
			assert.Nil(t, product)
		})
	}
}

func TestClient_FetchProductPrice_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, contains: "unexpected status code: 500"},
		{name: "graphql errors", status: http.StatusOK, body: `{"errors":[{"message":"bad sku"}]}`, contains: "bad sku"},
		{name: "invalid json", status: http.StatusOK, body: `<html>`, contains: "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := catalogServer(t, tt.status, tt.body)
			defer server.Close()

			product, err := newTestClient(server.URL).FetchProductPrice(context.Background(), "WID-1")

			assert.Nil(t, product)
			require.ErrorIs(t, err, ErrFallbackUnavailable)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestClient_FetchProductPrice_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	_, err := newTestClient(endpoint).FetchProductPrice(context.Background(), "WID-1")

	assert.ErrorIs(t, err, ErrFallbackUnavailable)
}

func TestClient_FetchProductPrice_NoEndpoint(t *testing.T) {
	_, err := newTestClient("").FetchProductPrice(context.Background(), "WID-1")

	assert.ErrorIs(t, err, ErrFallbackUnavailable)
}
