package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

type RequestOptions struct {
	Method          string
	URL             string
	Headers         map[string]string
	Body            interface{}
	Context         context.Context
	MaxElapsed      time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

func NewClient() *Client {
	logger, _ := zap.NewProduction()
	return NewClientWithLogger(logger)
}

// NewClientWithLogger creates a new HTTP client with a custom logger
func NewClientWithLogger(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) Do(opts RequestOptions) (*Response, error) {
	// Set default backoff configuration
	if opts.MaxElapsed == 0 {
		opts.MaxElapsed = 2 * time.Minute
	}
	if opts.InitialInterval == 0 {
		opts.InitialInterval = 100 * time.Millisecond
	}
	if opts.MaxInterval == 0 {
		opts.MaxInterval = 30 * time.Second
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = opts.InitialInterval
	expBackoff.MaxInterval = opts.MaxInterval
	expBackoff.Reset()

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	operation := func() (*Response, error) {
		req, err := c.buildRequest(ctx, opts)
		if err != nil {
			c.logger.Error("Failed to build request", zap.Error(err), zap.String("method", opts.Method), zap.String("url", opts.URL))
			return nil, backoff.Permanent(err)
		}

		c.logger.Debug("Making HTTP request",
			zap.String("method", opts.Method),
			zap.String("url", opts.URL))

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			// Network errors are retryable
			c.logger.Warn("HTTP request failed, will retry",
				zap.Error(err),
				zap.String("method", opts.Method),
				zap.String("url", opts.URL))
			return nil, err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			c.logger.Error("Failed to read response body", zap.Error(err))
			return nil, backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		resp := &Response{
			StatusCode: httpResp.StatusCode,
			Headers:    httpResp.Header,
			Body:       body,
		}

		// 5xx responses are retryable, 4xx are not
		if httpResp.StatusCode >= 500 {
			c.logger.Warn("Server error, will retry",
				zap.Int("status_code", httpResp.StatusCode),
				zap.String("method", opts.Method),
				zap.String("url", opts.URL))
			return nil, fmt.Errorf("server error: %d - %s", httpResp.StatusCode, string(body))
		}

		if httpResp.StatusCode >= 400 {
			c.logger.Error("Client error, not retryable",
				zap.Int("status_code", httpResp.StatusCode),
				zap.String("method", opts.Method),
				zap.String("url", opts.URL),
				zap.String("response", string(body)))
			return nil, backoff.Permanent(fmt.Errorf("client error: %d - %s", httpResp.StatusCode, string(body)))
		}

		c.logger.Debug("HTTP request successful",
			zap.Int("status_code", httpResp.StatusCode),
			zap.String("method", opts.Method),
			zap.String("url", opts.URL))

		return resp, nil
	}

	retryOpts := []backoff.RetryOption{
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxElapsedTime(opts.MaxElapsed),
	}

	resp, err := backoff.Retry(ctx, operation, retryOpts...)
	if err != nil {
		c.logger.Error("HTTP request failed after retries",
			zap.Error(err),
			zap.String("method", opts.Method),
			zap.String("url", opts.URL))
		return nil, err
	}

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, opts RequestOptions) (*http.Request, error) {
	if opts.Headers == nil {
		opts.Headers = map[string]string{}
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		switch v := opts.Body.(type) {
		case []byte:
			bodyReader = bytes.NewReader(v)
		case url.Values:
			// Form bodies are used for the OAuth token endpoint
			bodyReader = strings.NewReader(v.Encode())
			if opts.Headers["Content-Type"] == "" && opts.Headers["content-type"] == "" {
				opts.Headers["Content-Type"] = "application/x-www-form-urlencoded"
			}
		default:
			bodyJSON, err := json.Marshal(opts.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", err)
			}
			bodyReader = bytes.NewReader(bodyJSON)
		}
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	if opts.Body != nil && opts.Headers["Content-Type"] == "" && opts.Headers["content-type"] == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Set custom headers
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headers,
		Context: ctx,
	})
}

func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodPost,
		URL:     url,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
}

func (c *Client) Patch(ctx context.Context, url string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodPatch,
		URL:     url,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
}
