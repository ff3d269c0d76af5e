// Package googlebooks is a thin, single-shot client for the Google Books
// volumes API.
package googlebooks

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/samuelcardenasg23/book-play/internal/config"
	"github.com/samuelcardenasg23/book-play/internal/ratelimit"
)

var (
	// ErrEmptyQuery is returned when a search query is blank after trimming.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrEmptyID is returned when a volume ID is blank.
	ErrEmptyID = errors.New("volume ID is empty")
	// ErrInvalidID is returned for IDs that would not address a single
	// volume below the base URL, such as "." and "..".
	ErrInvalidID = errors.New("volume ID is not a valid path segment")
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the volumes endpoint. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	apiKey      string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithRateLimiter sets the limiter consulted before each request.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// NewClient builds a client from explicit provider settings. Blank base URL
// or API key is a configuration error.
func NewClient(cfg config.Provider, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid provider base URL %q: scheme and host are required", cfg.BaseURL)
	}

	client := &Client{
		baseURL:     base,
		apiKey:      cfg.APIKey,
		httpClient:  newHTTPClient(cfg.InsecureSkipVerify),
		rateLimiter: ratelimit.New("GoogleBooks", cfg.RequestsPerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.rateLimiter != nil {
		slog.Debug("Rate limiting metadata requests", "limiter", client.rateLimiter.Name(), "rps", cfg.RequestsPerSecond)
	}

	return client, nil
}

// newHTTPClient returns a client with transport defaults and no overall
// timeout. Certificate verification stays on unless insecure is set.
func newHTTPClient(insecure bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		slog.Warn("TLS certificate verification is disabled for the metadata provider")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-out
	}
	return &http.Client{Transport: transport}
}
