// Package httpretry retries idempotent HTTP reads with jittered
// exponential backoff. Writes pass through exactly once.
package httpretry

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
)

// Doer executes HTTP requests. *http.Client and *Client both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps a Doer with retries for GET and HEAD requests.
type Client struct {
	doer       Doer
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBackoff sets the base and maximum retry delay.
func WithBackoff(base, max time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = base
		c.maxDelay = max
	}
}

// New wraps doer. A nil doer gets a 15 second timeout. maxRetries counts
// attempts after the first; zero disables retrying and negative values
// fall back to 2.
func New(doer Doer, maxRetries int, opts ...Option) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}
	if maxRetries < 0 {
		maxRetries = 2
	}
	c := &Client{
		doer:       doer,
		maxRetries: maxRetries,
		baseDelay:  250 * time.Millisecond,
		maxDelay:   5 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Do sends req. Only idempotent reads are retried, on 429, 502, 503, 504
// and transport errors. A canceled context stops retrying at once. The
// final response is returned as-is so the caller can read its body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if !idempotent(req.Method) || c.maxRetries == 0 {
		return c.doer.Do(req)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := req.Context().Err(); err != nil {
			return nil, err
		}

		if attempt > 0 {
			delay := c.delay(attempt)
			logger.Debug("retrying helpdesk request",
				"method", req.Method,
				"path", req.URL.Path,
				"attempt", attempt,
				"delay", delay.String(),
			)
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			}
		}

		resp, err := c.doer.Do(req)
		if err != nil {
			if req.Context().Err() != nil {
				return nil, err
			}
			lastErr = err
			continue
		}
		if !retryable(resp.StatusCode) || attempt == c.maxRetries {
			return resp, nil
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("httpretry: retryable status %d", resp.StatusCode)
	}
	return nil, lastErr
}

// delay is full jitter over min(maxDelay, baseDelay * 2^(attempt-1)).
func (c *Client) delay(attempt int) time.Duration {
	d := float64(c.baseDelay) * math.Pow(2, float64(attempt-1))
	if d > float64(c.maxDelay) {
		d = float64(c.maxDelay)
	}
	j := time.Duration(rand.Float64() * d)
	if j < c.baseDelay/4 {
		j = c.baseDelay / 4
	}
	return j
}

func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func retryable(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
