package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"ssg-pdp/config"
	"ssg-pdp/extractor"
	"ssg-pdp/internal/catalog"
	"ssg-pdp/internal/types"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Parse command line flags
	var (
		urlFlag      = flag.String("url", "", "Pre-rendered product page to fetch")
		fileFlag     = flag.String("file", "", "Local HTML file of a pre-rendered product page")
		pageURLFlag  = flag.String("page-url", "", "Address the page is served from (used with --file)")
		outputFlag   = flag.String("output", "", "Output file path (default: stdout)")
		endpoint     = flag.String("endpoint", "", "Catalog service GraphQL endpoint for the price fallback")
		requestDelay = flag.Duration("delay", 0, "Delay between requests")
		maxRetries   = flag.Int("retries", -1, "Maximum retry attempts for page fetches")
		timeout      = flag.Duration("timeout", 0, "Request timeout")
		useBrowser   = flag.Bool("browser", false, "Render the page in a headless browser")
		httpOnly     = flag.Bool("http-only", false, "Use HTTP requests only (disable headless browser)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Validate flags - exactly one of --url or --file must be provided
	if *urlFlag == "" && *fileFlag == "" {
		log.Fatal("Either --url or --file flag is required")
	}
	if *urlFlag != "" && *fileFlag != "" {
		log.Fatal("Cannot use both --url and --file flags")
	}

	// Setup logging
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	// Set log level from LOG_LEVEL env if present
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the loaded configuration
	if *endpoint != "" {
		cfg.CatalogEndpoint = *endpoint
	}
	if *requestDelay > 0 {
		cfg.RequestDelay = *requestDelay
	}
	if *maxRetries >= 0 {
		cfg.MaxRetries = *maxRetries
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *useBrowser {
		cfg.UseHeadlessBrowser = true
	}
	if *httpOnly {
		cfg.UseHeadlessBrowser = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	prices := catalog.NewPriceCache(catalog.NewClient(cfg, logger), logger)
	ssgExtractor := extractor.NewSSGExtractor(cfg, prices, logger)
	defer ssgExtractor.Close()

	startTime := time.Now()

	var (
		doc     types.Node
		pageURL = *pageURLFlag
	)
	if *urlFlag != "" {
		pageURL = *urlFlag
		doc, err = ssgExtractor.Adapter().LoadDocument(ctx, *urlFlag)
	} else {
		var html []byte
		html, err = os.ReadFile(*fileFlag)
		if err == nil {
			doc, err = ssgExtractor.Adapter().ParseDocument(string(html))
		}
	}
	if err != nil {
		logger.Fatalf("Failed to load page: %v", err)
	}

	result := ssgExtractor.Extract(ctx, doc)
	if result.State != extractor.StateResolved {
		logger.Errorf("Page is not a pre-rendered product page; use the dynamic product fetch instead")
		os.Exit(2)
	}
	if result.FallbackErr != nil {
		logger.Warnf("Product has no price: %v", result.FallbackErr)
	}

	view := extractor.TransformToPDPFormat(result.Product, extractor.LocationFromURL(pageURL))

	jsonData, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to marshal results: %v", err)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, jsonData, 0644); err != nil {
			logger.Fatalf("Failed to write output file: %v", err)
		}
		logger.Infof("Results written to: %s", *outputFlag)
	} else {
		fmt.Println(string(jsonData))
	}

	logger.Infof("Extraction completed in %v", time.Since(startTime))
	logger.Infof("SKU: %s, price source: %s", result.Product.SKU, result.PriceSource)
}

