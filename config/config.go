package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"ssg-pdp/internal/types"
)

// fileConfig mirrors config.yaml and the PDP_* environment variables
type fileConfig struct {
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

// FetchConfig holds page loading settings
type FetchConfig struct {
	RequestDelay          time.Duration `mapstructure:"request_delay"`
	MaxRetries            int           `mapstructure:"max_retries"`
	Timeout               time.Duration `mapstructure:"timeout"`
	MaxConcurrentRequests int           `mapstructure:"max_concurrent_requests"`
	UseHeadlessBrowser    bool          `mapstructure:"use_headless_browser"`
	UserAgent             string        `mapstructure:"user_agent"`
}

// CatalogConfig holds the catalog service settings used for the price fallback
type CatalogConfig struct {
	Endpoint      string            `mapstructure:"endpoint"`
	APIKey        string            `mapstructure:"api_key"`
	EnvironmentID string            `mapstructure:"environment_id"`
	StoreCode     string            `mapstructure:"store_code"`
	Headers       map[string]string `mapstructure:"headers"`
	RateLimit     float64           `mapstructure:"rate_limit"`
	Burst         int               `mapstructure:"burst"`
}

// Load reads configuration from an optional config.yaml and PDP_* environment variables
func Load() (*types.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ssg-pdp/")

	// PDP_CATALOG_ENDPOINT -> catalog.endpoint
	v.SetEnvPrefix("PDP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&fc); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return fc.toConfig(), nil
}

// setDefaults registers every key so environment variables can override it
func setDefaults(v *viper.Viper) {
	defaults := types.DefaultConfig()

	v.SetDefault("fetch.request_delay", defaults.RequestDelay)
	v.SetDefault("fetch.max_retries", defaults.MaxRetries)
	v.SetDefault("fetch.timeout", defaults.Timeout)
	v.SetDefault("fetch.max_concurrent_requests", defaults.MaxConcurrentRequests)
	v.SetDefault("fetch.use_headless_browser", defaults.UseHeadlessBrowser)
	v.SetDefault("fetch.user_agent", defaults.UserAgent)

	v.SetDefault("catalog.endpoint", "")
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.environment_id", "")
	v.SetDefault("catalog.store_code", "")
	v.SetDefault("catalog.headers", map[string]string{})
	v.SetDefault("catalog.rate_limit", defaults.CatalogRateLimit)
	v.SetDefault("catalog.burst", defaults.CatalogBurst)
}

func validate(fc *fileConfig) error {
	if fc.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got: %v", fc.Fetch.Timeout)
	}
	if fc.Fetch.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got: %d", fc.Fetch.MaxRetries)
	}
	if fc.Fetch.MaxConcurrentRequests < 1 {
		return fmt.Errorf("max concurrent requests must be at least 1, got: %d", fc.Fetch.MaxConcurrentRequests)
	}
	if fc.Catalog.RateLimit < 0 {
		return fmt.Errorf("catalog rate limit cannot be negative, got: %v", fc.Catalog.RateLimit)
	}
	return nil
}

func (fc *fileConfig) toConfig() *types.Config {
	headers := make(map[string]string, len(fc.Catalog.Headers)+3)
	for key, value := range fc.Catalog.Headers {
		headers[key] = value
	}
	if fc.Catalog.APIKey != "" {
		headers["x-api-key"] = fc.Catalog.APIKey
	}
	if fc.Catalog.EnvironmentID != "" {
		headers["Magento-Environment-Id"] = fc.Catalog.EnvironmentID
	}
	if fc.Catalog.StoreCode != "" {
		headers["Magento-Store-Code"] = fc.Catalog.StoreCode
	}

	return &types.Config{
		RequestDelay:          fc.Fetch.RequestDelay,
		MaxRetries:            fc.Fetch.MaxRetries,
		Timeout:               fc.Fetch.Timeout,
		MaxConcurrentRequests: fc.Fetch.MaxConcurrentRequests,
		UseHeadlessBrowser:    fc.Fetch.UseHeadlessBrowser,
		UserAgent:             fc.Fetch.UserAgent,
		CatalogEndpoint:       fc.Catalog.Endpoint,
		CatalogHeaders:        headers,
		CatalogRateLimit:      fc.Catalog.RateLimit,
		CatalogBurst:          fc.Catalog.Burst,
	}
}
