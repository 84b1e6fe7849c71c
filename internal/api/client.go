package api

import (
	"log/slog"
	"net/http"
	"time"
)

// Observer receives per-request transport measurements.
type Observer interface {
	ObserveRequest(provider string, status int, elapsed time.Duration)
	ObserveRateLimit(provider string, attempt int, wait time.Duration)
}

// Client is the JSON transport shared by both provider clients. It owns the
// rate-limit contract: a 429 suspends only the calling goroutine and re-issues
// the same request, a bounded number of times.
type Client struct {
	baseURL    string
	provider   string
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer

	maxRetries        int
	retryBackoff      time.Duration
	maxBackoff        time.Duration
	defaultRetryAfter time.Duration

	now func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  baseURL,
		provider: "default",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:            slog.Default(),
		maxRetries:        8,
		retryBackoff:      time.Second,
		maxBackoff:        2 * time.Minute,
		defaultRetryAfter: 5 * time.Second,
		now:               time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets how many times a rate-limited request is re-issued and the
// minimum wait before each re-issue.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithMaxBackoff caps any single wait between re-issues.
func WithMaxBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.maxBackoff = d
	}
}

// WithDefaultRetryAfter sets the wait used when a 429 carries no Retry-After.
func WithDefaultRetryAfter(d time.Duration) ClientOption {
	return func(c *Client) {
		c.defaultRetryAfter = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithObserver reports request outcomes to o.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// WithProvider sets the provider label used in logs and metrics.
func WithProvider(name string) ClientOption {
	return func(c *Client) {
		c.provider = name
	}
}
