package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrRateLimited marks a request that was still throttled after every retry.
	ErrRateLimited = errors.New("rate limited")

	// ErrEntityUnavailable marks a request whose payload is unavailable this run.
	ErrEntityUnavailable = errors.New("entity unavailable")
)

// APIError represents a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
	RetryAfter time.Duration // parsed Retry-After, zero when absent
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match any APIError with errors.Is(err, ErrEntityUnavailable).
func (e *APIError) Unwrap() error {
	return ErrEntityUnavailable
}

// IsRetryable returns true if the error should trigger a retry. Only the
// remote's explicit throttling signal is retried.
func (e *APIError) IsRetryable() bool {
	return e.IsRateLimited()
}

// IsRateLimited reports an HTTP 429.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// doRequest performs one HTTP GET against path.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(0, time.Since(start))
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.observe(resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
			RetryAfter: c.parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return body, nil
}

// doWithRetry performs a request, waiting out 429 responses. The wait is the
// server's Retry-After (or the default), doubled on each consecutive 429 and
// capped at maxBackoff. After maxRetries re-issues the request is abandoned.
func (c *Client) doWithRetry(ctx context.Context, path string, query url.Values) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, err := c.doRequest(ctx, path, query)
		if err == nil {
			return body, nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%s %s: %w: %w", c.provider, path, ErrEntityUnavailable, err)
		}

		if !apiErr.IsRetryable() {
			c.logger.Warn("request failed",
				"provider", c.provider,
				"path", path,
				"status", apiErr.StatusCode,
				"reason", apiErr.Message,
			)
			return nil, fmt.Errorf("%s %s: %w", c.provider, path, apiErr)
		}

		if attempt >= c.maxRetries {
			c.logger.Warn("rate limit retries exhausted",
				"provider", c.provider,
				"path", path,
				"retries", attempt,
			)
			return nil, fmt.Errorf("%s %s: %w after %d retries: %w", c.provider, path, ErrRateLimited, attempt, apiErr)
		}

		wait := c.backoff(apiErr.RetryAfter, attempt)
		if c.observer != nil {
			c.observer.ObserveRateLimit(c.provider, attempt+1, wait)
		}
		c.logger.Debug("rate limited, retrying request",
			"provider", c.provider,
			"attempt", attempt+1,
			"wait", wait,
			"path", path,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// backoff computes the wait before re-issue number attempt+1.
func (c *Client) backoff(retryAfter time.Duration, attempt int) time.Duration {
	wait := retryAfter
	if wait <= 0 {
		wait = c.defaultRetryAfter
	}
	if wait < c.retryBackoff {
		wait = c.retryBackoff
	}
	for i := 0; i < attempt && (c.maxBackoff <= 0 || wait < c.maxBackoff); i++ {
		wait *= 2
	}
	if wait > 0 {
		// up to 10% jitter
		wait += time.Duration(rand.Int64N(int64(wait)/10 + 1))
	}
	if c.maxBackoff > 0 && wait > c.maxBackoff {
		wait = c.maxBackoff
	}
	return wait
}

// parseRetryAfter accepts delta-seconds or an HTTP date. Unparseable or
// absent values yield zero so the default applies.
func (c *Client) parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(c.now()); d > 0 {
			return d
		}
	}
	return 0
}

func (c *Client) observe(status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(c.provider, status, elapsed)
	}
}

// get performs a GET request with retries and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doWithRetry(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal %s response: %w: %w", path, ErrEntityUnavailable, err)
	}

	return nil
}
