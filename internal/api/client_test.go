package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// fastRetries keeps 429 waits in the millisecond range.
func fastRetries(max int) []ClientOption {
	return []ClientOption{
		WithRetries(max, time.Millisecond),
		WithDefaultRetryAfter(time.Millisecond),
		WithMaxBackoff(10 * time.Millisecond),
	}
}

type recordingObserver struct {
	requests   atomic.Int32
	rateLimits atomic.Int32
}

func (o *recordingObserver) ObserveRequest(string, int, time.Duration) { o.requests.Add(1) }
func (o *recordingObserver) ObserveRateLimit(string, int, time.Duration) {
	o.rateLimits.Add(1)
}

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.example.com")

		if c.baseURL != "https://api.example.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.example.com")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 8 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 8)
		}
		if c.defaultRetryAfter != 5*time.Second {
			t.Errorf("defaultRetryAfter = %v, want %v", c.defaultRetryAfter, 5*time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with options", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		hc := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://api.example.com",
			WithHTTPClient(hc),
			WithRetries(3, 2*time.Second),
			WithMaxBackoff(time.Minute),
			WithDefaultRetryAfter(7*time.Second),
			WithLogger(logger),
			WithProvider("fantasy"),
		)
		if c.httpClient != hc {
			t.Error("custom HTTP client not set")
		}
		if c.maxRetries != 3 || c.retryBackoff != 2*time.Second {
			t.Errorf("retries = %d/%v, want 3/2s", c.maxRetries, c.retryBackoff)
		}
		if c.maxBackoff != time.Minute {
			t.Errorf("maxBackoff = %v, want 1m", c.maxBackoff)
		}
		if c.defaultRetryAfter != 7*time.Second {
			t.Errorf("defaultRetryAfter = %v, want 7s", c.defaultRetryAfter)
		}
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
		if c.provider != "fantasy" {
			t.Errorf("provider = %q, want fantasy", c.provider)
		}
	})

	t.Run("nil logger keeps default", func(t *testing.T) {
		c := NewClient("https://api.example.com", WithLogger(nil))
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Message: "Not Found"}
		if err.Error() != "api error 404: Not Found" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("only 429 is retryable", func(t *testing.T) {
		tests := []struct {
			code int
			want bool
		}{
			{429, true},
			{500, false},
			{503, false},
			{404, false},
			{400, false},
		}
		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.want {
				t.Errorf("IsRetryable(%d) = %v, want %v", tt.code, got, tt.want)
			}
		}
	})

	t.Run("matches ErrEntityUnavailable", func(t *testing.T) {
		var err error = &APIError{StatusCode: 404}
		if !errors.Is(err, ErrEntityUnavailable) {
			t.Error("APIError should match ErrEntityUnavailable")
		}
	})
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewClient("http://x")
	c.now = func() time.Time { return now }

	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"-1", 0},
		{"soon", 0},
		{now.Add(10 * time.Second).Format(http.TimeFormat), 10 * time.Second},
		{now.Add(-10 * time.Second).Format(http.TimeFormat), 0},
	}
	for _, tt := range tests {
		if got := c.parseRetryAfter(tt.in); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBackoff(t *testing.T) {
	c := NewClient("http://x",
		WithRetries(5, 0),
		WithDefaultRetryAfter(5*time.Second),
		WithMaxBackoff(30*time.Second),
	)

	t.Run("default retry-after", func(t *testing.T) {
		got := c.backoff(0, 0)
		if got < 5*time.Second || got > 5500*time.Millisecond {
			t.Errorf("backoff(0, 0) = %v, want 5s plus at most 10%%", got)
		}
	})

	t.Run("server value grows", func(t *testing.T) {
		got := c.backoff(2*time.Second, 2)
		if got < 8*time.Second || got > 8800*time.Millisecond {
			t.Errorf("backoff(2s, 2) = %v, want about 8s", got)
		}
	})

	t.Run("capped", func(t *testing.T) {
		if got := c.backoff(10*time.Second, 6); got != 30*time.Second {
			t.Errorf("backoff(10s, 6) = %v, want 30s", got)
		}
	})
}

// TestDoWithRetry tests the 429 contract against a live test server.
func TestDoWithRetry(t *testing.T) {
	t.Run("success on first try", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, fastRetries(3)...)
		body, err := c.doWithRetry(context.Background(), "/test", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"ok":true}` {
			t.Errorf("body = %s", body)
		}
		if calls.Load() != 1 {
			t.Errorf("calls = %d, want 1", calls.Load())
		}
	})

	t.Run("429 once then 200", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		obs := &recordingObserver{}
		c := NewClient(server.URL, append(fastRetries(3), WithObserver(obs))...)
		if _, err := c.doWithRetry(context.Background(), "/test", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls.Load() != 2 {
			t.Errorf("calls = %d, want 2", calls.Load())
		}
		if obs.requests.Load() != 2 || obs.rateLimits.Load() != 1 {
			t.Errorf("observer saw %d requests, %d rate limits; want 2, 1", obs.requests.Load(), obs.rateLimits.Load())
		}
	})

	t.Run("retries exhausted", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewClient(server.URL, fastRetries(2)...)
		_, err := c.doWithRetry(context.Background(), "/test", nil)
		if !errors.Is(err, ErrRateLimited) {
			t.Errorf("error = %v, want ErrRateLimited", err)
		}
		if !errors.Is(err, ErrEntityUnavailable) {
			t.Errorf("error = %v, want ErrEntityUnavailable", err)
		}
		if calls.Load() != 3 {
			t.Errorf("calls = %d, want 3 (1 + 2 retries)", calls.Load())
		}
	})

	t.Run("non-2xx is not retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL, fastRetries(3)...)
		_, err := c.doWithRetry(context.Background(), "/test", nil)

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error = %v, want *APIError", err)
		}
		if apiErr.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("StatusCode = %d, want 503", apiErr.StatusCode)
		}
		if !errors.Is(err, ErrEntityUnavailable) {
			t.Error("error should match ErrEntityUnavailable")
		}
		if calls.Load() != 1 {
			t.Errorf("calls = %d, want 1", calls.Load())
		}
	})

	t.Run("context cancelled during wait", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewClient(server.URL, WithRetries(3, time.Millisecond), WithMaxBackoff(time.Minute))
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := c.doWithRetry(ctx, "/test", nil)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want context.DeadlineExceeded", err)
		}
		if time.Since(start) > 5*time.Second {
			t.Error("wait was not interrupted by the context")
		}
	})
}

func TestGetDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	var out map[string]any
	err := c.get(context.Background(), "/x", nil, &out)
	if !errors.Is(err, ErrEntityUnavailable) {
		t.Errorf("error = %v, want ErrEntityUnavailable", err)
	}
}
