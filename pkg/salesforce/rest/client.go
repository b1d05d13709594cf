package sfrest

import (
	"sync"
	"time"

	httpclient "github.com/zenchef/salesforce-data-utils/pkg/http"
	"go.uber.org/zap"
)

// Salesforce is the main client for interacting with the Salesforce REST API
type Salesforce struct {
	config     *Config
	httpClient *httpclient.Client
	tokenCache *tokenCache
	logger     *zap.Logger
}

// tokenCache manages the OAuth access token with thread-safe access
type tokenCache struct {
	mu          sync.RWMutex
	accessToken string
	instanceURL string
	expiresAt   time.Time
}

// NewSalesforce creates a new Salesforce client with default production logger
func NewSalesforce(cfg *Config) *Salesforce {
	logger, _ := zap.NewProduction()
	return NewSalesforceWithLogger(cfg, logger)
}

// NewSalesforceWithLogger creates a new Salesforce client with a custom logger
func NewSalesforceWithLogger(cfg *Config, logger *zap.Logger) *Salesforce {
	return &Salesforce{
		config:     cfg,
		httpClient: httpclient.NewClientWithLogger(logger),
		tokenCache: &tokenCache{},
		logger:     logger,
	}
}
