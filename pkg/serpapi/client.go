package serpapi

import (
	"context"
	"encoding/json"
	"fmt"

	httpclient "github.com/zenchef/salesforce-data-utils/pkg/http"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const searchBaseURL = "https://serpapi.com"

// Client queries the SERP API google_maps engine
type Client struct {
	config     *Config
	httpClient *httpclient.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Searcher is the interface consumed by the enrichment flow
type Searcher interface {
	// SearchGoogleMaps returns the top place for a query, or nil when the
	// search produced no results
	SearchGoogleMaps(ctx context.Context, query string) (*Place, error)
}

// NewClient creates a new SERP API client
func NewClient(cfg *Config, logger *zap.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.MaxRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.MaxRPS), 1)
	}
	return &Client{
		config:     cfg,
		httpClient: httpclient.NewClientWithLogger(logger),
		limiter:    limiter,
		logger:     logger,
	}
}

// SearchGoogleMaps searches Google Maps for a query (name + address + city)
// and returns the first local result, or nil when nothing matched.
func (c *Client) SearchGoogleMaps(ctx context.Context, query string) (*Place, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	// hl=en forces English so fields like the operating status parse
	// consistently; gl=us is a safe default for global coverage
	searchURL, err := httpclient.BuildURL(searchBaseURL, "/search.json", map[string]string{
		"engine":  "google_maps",
		"type":    "search",
		"q":       query,
		"api_key": c.config.APIKey,
		"hl":      "en",
		"gl":      "us",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build search URL: %w", err)
	}

	resp, err := c.httpClient.Get(ctx, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("search API error: %s", result.Error)
	}

	if len(result.LocalResults) > 0 {
		return result.LocalResults[0].toPlace(), nil
	}

	// A direct hit may come back as a single place instead of a list
	if result.PlaceResults != nil && result.PlaceResults.Title != "" {
		return result.PlaceResults.toPlace(), nil
	}

	c.logger.Debug("No results for query", zap.String("query", query))
	return nil, nil
}
