// Package meli provides a Mercado Libre API client abstracted behind
// interfaces for testability. All calls are read-only GETs against the
// public API for one site (MLB by default).
package meli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"melicalc/internal/metrics"
)

const (
	defaultAPIURL = "https://api.mercadolibre.com"
	defaultSite   = "MLB"
)

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// API is the subset of the marketplace API the resolution pipeline and
// the fee oracle consume.
type API interface {
	Item(ctx context.Context, itemID string) (*Item, error)
	Product(ctx context.Context, productID string) (*Product, error)
	ProductItems(ctx context.Context, productID string) ([]ProductOffer, error)
	ListingPrices(ctx context.Context, price float64, categoryID string) ([]ListingPriceOption, error)
	CategoryPath(ctx context.Context, categoryID string) (*Category, error)
}

// StatusError is returned for non-2xx API responses so callers can tell
// transport-level failures apart from missing data.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status %d: %s", e.Endpoint, e.Status, e.Body)
}

// Client implements API over HTTP.
type Client struct {
	apiURL      string
	site        string
	tokens      TokenProvider
	client      *http.Client
	rateLimiter *RateLimiter
}

// Option configures the Client.
type Option func(*Client)

// WithAPIURL overrides the default API base URL.
func WithAPIURL(u string) Option {
	return func(c *Client) {
		c.apiURL = u
	}
}

// WithSite overrides the default site id.
func WithSite(s string) Option {
	return func(c *Client) {
		c.site = s
	}
}

// WithTokenProvider attaches an OAuth token source. Without one the
// client calls the API anonymously, which the public endpoints allow at
// reduced quota.
func WithTokenProvider(t TokenProvider) Option {
	return func(c *Client) {
		c.tokens = t
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and
// daily API call limits. When set, every call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// NewClient creates a marketplace API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiURL: defaultAPIURL,
		site:   defaultSite,
		client: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs an authenticated GET against the API and decodes the JSON
// body into out. The endpoint label is used for metrics only.
func (c *Client) get(ctx context.Context, endpoint, url string, out any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	metrics.MeliAPICallsTotal.WithLabelValues(endpoint).Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	applyBrowserHeaders(req.Header)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			metrics.MeliAPIErrorsTotal.WithLabelValues(endpoint).Inc()
			return fmt.Errorf("getting auth token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.MeliAPIErrorsTotal.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("executing %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.MeliAPIErrorsTotal.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("reading %s response: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.MeliAPIErrorsTotal.WithLabelValues(endpoint).Inc()
		return &StatusError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     truncate(string(body), 200),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.MeliAPIErrorsTotal.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("parsing %s response: %w", endpoint, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
