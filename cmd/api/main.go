package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"ssg-pdp/config"
	"ssg-pdp/extractor"
	"ssg-pdp/internal/catalog"
	"ssg-pdp/internal/types"
)

// APIRequest represents the request body for the API.
// Either URL is fetched, or HTML is used as-is with PageURL as its address.
type APIRequest struct {
	URL     string `json:"url"`
	HTML    string `json:"html"`
	PageURL string `json:"page_url"`
}

// APIResponse represents the response from the API
type APIResponse struct {
	Success     bool               `json:"success"`
	State       string             `json:"state,omitempty"`
	PriceSource string             `json:"price_source,omitempty"`
	Data        *types.ProductView `json:"data,omitempty"`
	Warning     string             `json:"warning,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// Server holds the API server configuration
type Server struct {
	logger *logrus.Logger
	config *types.Config
	prices *catalog.PriceCache
	slots  chan struct{}
}

// NewServer creates a new API server
func NewServer() (*Server, error) {
	// Load .env file if present
	_ = godotenv.Load()

	// Setup logging
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Server{
		logger: logger,
		config: cfg,
		prices: catalog.NewPriceCache(catalog.NewClient(cfg, logger), logger),
		slots:  make(chan struct{}, cfg.MaxConcurrentRequests),
	}, nil
}

// handlePrerender converts a pre-rendered product page into a product view
func (s *Server) handlePrerender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	// Handle preflight requests
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.URL = strings.TrimSpace(req.URL)

	if req.URL == "" && req.HTML == "" {
		s.sendError(w, "Either url or html is required", http.StatusBadRequest)
		return
	}

	// Bound the number of pages processed at once
	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-r.Context().Done():
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	ssgExtractor := extractor.NewSSGExtractor(s.config, s.prices, s.logger)
	defer ssgExtractor.Close()

	var (
		doc     types.Node
		err     error
		pageURL = req.PageURL
	)
	if req.URL != "" {
		s.logger.Infof("API request received for page: %s", req.URL)
		pageURL = req.URL
		doc, err = ssgExtractor.Adapter().LoadDocument(ctx, req.URL)
	} else {
		s.logger.Infof("API request received with inline HTML (%d bytes)", len(req.HTML))
		doc, err = ssgExtractor.Adapter().ParseDocument(req.HTML)
	}
	if err != nil {
		s.logger.Warnf("Failed to load page: %v", err)
		s.sendError(w, "Failed to load page", http.StatusBadGateway)
		return
	}

	result := ssgExtractor.Extract(ctx, doc)
	response := APIResponse{
		Success:     result.State == extractor.StateResolved,
		State:       result.State.String(),
		PriceSource: result.PriceSource,
	}
	if result.State != extractor.StateResolved {
		response.Error = "Not a pre-rendered product page"
		s.writeJSON(w, http.StatusUnprocessableEntity, response)
		return
	}

	response.Data = extractor.TransformToPDPFormat(result.Product, extractor.LocationFromURL(pageURL))
	if result.FallbackErr != nil {
		response.Warning = result.FallbackErr.Error()
	}

	s.writeJSON(w, http.StatusOK, response)
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, statusCode, APIResponse{
		Success: false,
		Error:   message,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, response APIResponse) {
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "healthy",
		"cached_prices": s.prices.Size(),
	})
}

// Start starts the API server
func (s *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/prerender", s.handlePrerender)
	mux.HandleFunc("/health", s.handleHealth)

	s.logger.Infof("Starting API server on port %s", port)
	s.logger.Info("Available endpoints:")
	s.logger.Info("  POST /prerender - Convert a pre-rendered product page")
	s.logger.Info("  GET  /health    - Health check")

	return http.ListenAndServe(":"+port, mux)
}

func main() {
	// Get port from environment variable, default to 8080
	serverPort := "8080"
	if envPort := os.Getenv("API_PORT"); envPort != "" {
		serverPort = envPort
	}

	server, err := NewServer()
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Starting API server on port %s", serverPort)
	log.Fatal(server.Start(serverPort))
}
