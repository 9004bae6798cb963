// Package upstream is the HTTP client for the on-chain analytics API. It
// speaks the columnar response format, caches idempotent GETs for a short
// TTL, and surfaces non-2xx responses as typed failures carrying the HTTP
// status and any upstream error payload.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"dexScope/internal/columnar"
	"dexScope/internal/model"
)

// Config holds client settings.
type Config struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	PriceCacheTTL  time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
}

const (
	defaultRequestTimeout = 15 * time.Second
	defaultCacheTTL       = 60 * time.Second
	defaultPriceCacheTTL  = 10 * time.Second
	defaultRetryBackoff   = 500 * time.Millisecond
)

// Client issues GET requests against the analytics API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *ttlCache
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.PriceCacheTTL <= 0 {
		cfg.PriceCacheTTL = defaultPriceCacheTTL
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cache:      newTTLCache(),
		logger:     logger,
	}
}

// GetTables fetches a columnar response from an endpoint. Responses are
// cached per (endpoint, normalized query) key; price endpoints use the
// shorter TTL. Transient transport failures are retried with exponential
// backoff; an answered non-2xx is returned as *model.APIError without retry.
func (c *Client) GetTables(ctx context.Context, endpoint string, params url.Values) ([]columnar.Table, error) {
	key := endpoint + "?" + params.Encode()
	if tables, ok := c.cache.Get(key); ok {
		c.logger.Debug("upstream cache hit", zap.String("endpoint", endpoint))
		return tables, nil
	}

	var tables []columnar.Table
	err := withRetry(ctx, c.cfg.MaxRetries, c.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		tables, err = c.fetch(ctx, endpoint, params)
		if err != nil {
			c.logger.Warn("upstream fetch failed", zap.String("endpoint", endpoint), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, tables, c.ttlFor(endpoint))
	return tables, nil
}

func (c *Client) ttlFor(endpoint string) time.Duration {
	if strings.Contains(endpoint, "price") {
		return c.cfg.PriceCacheTTL
	}
	return c.cfg.CacheTTL
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]columnar.Table, error) {
	u, err := url.Parse(strings.TrimRight(c.cfg.BaseURL, "/") + endpoint)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.APIError{Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, buildAPIError(resp.StatusCode, body)
	}

	var tables []columnar.Table
	if err := json.Unmarshal(body, &tables); err != nil {
		return nil, &model.APIError{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return tables, nil
}

func buildAPIError(status int, body []byte) *model.APIError {
	apiErr := &model.APIError{
		Status:  status,
		Message: http.StatusText(status),
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Error != "" {
			apiErr.Message = payload.Error
		}
	}
	if len(body) > 0 && json.Valid(body) {
		apiErr.Payload = json.RawMessage(append([]byte(nil), body...))
	}
	return apiErr
}
