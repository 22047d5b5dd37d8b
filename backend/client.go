package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/ragview"
	ragjson "github.com/fwojciec/ragview/json"
)

const (
	defaultUA = "ragview/0.1"

	queryPath   = "/api/query"
	extractPath = "/api/extract"

	maxBody = 32 << 20
)

var _ ragview.Backend = (*Client)(nil)

// Client talks to the backend over HTTP.
type Client struct {
	baseURL    string
	ua         string
	http       *http.Client
	maxRetries int
	minBackoff time.Duration
	maxBackoff time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the timeout of the default http.Client. Retrieval over a
// large page tree plus answer generation can take minutes.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.ua = ua }
}

// WithRetry configures the retry policy for 429/5xx and network failures.
func WithRetry(maxRetries int, minBackoff, maxBackoff time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if minBackoff > 0 {
			c.minBackoff = minBackoff
		}
		if maxBackoff >= c.minBackoff {
			c.maxBackoff = maxBackoff
		}
	}
}

// NewClient constructs a Client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		ua:         defaultUA,
		http:       &http.Client{Timeout: 2 * time.Minute},
		maxRetries: 2,
		minBackoff: 250 * time.Millisecond,
		maxBackoff: 4 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Query calls POST /api/query.
func (c *Client) Query(ctx context.Context, req ragview.Request) (ragview.Response, error) {
	body, err := ragjson.MarshalQueryRequest(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.post(ctx, queryPath, body)
}

// Extract calls POST /api/extract.
func (c *Client) Extract(ctx context.Context, req ragview.Request) (ragview.Response, error) {
	body, err := ragjson.MarshalExtractRequest(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.post(ctx, extractPath, body)
}

// post sends body and decodes the reply. The backend answers failures with
// an error payload and a 4xx status; those decode into an ErrorResponse.
func (c *Client) post(ctx context.Context, path string, body []byte) (ragview.Response, error) {
	url := c.baseURL + path
	for attempt := 0; ; attempt++ {
		tracer().Debugf("POST %s (attempt %d)", url, attempt+1)
		status, header, data, err := c.do(ctx, url, body)
		if err != nil {
			if ctx.Err() != nil || attempt >= c.maxRetries {
				return nil, fmt.Errorf("POST %s: %v: %w", path, err, ragview.ErrBackend)
			}
			tracer().Infof("POST %s failed, retrying: %v", url, err)
			if err := c.sleep(ctx, backoff(attempt, c.minBackoff, c.maxBackoff)); err != nil {
				return nil, fmt.Errorf("POST %s: %v: %w", path, err, ragview.ErrBackend)
			}
			continue
		}

		if retryable(status) && attempt < c.maxRetries {
			wait := retryAfter(header.Get("Retry-After"))
			if wait == 0 {
				wait = backoff(attempt, c.minBackoff, c.maxBackoff)
			}
			tracer().Infof("POST %s: http %d, retrying in %s", url, status, wait)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, fmt.Errorf("POST %s: %v: %w", path, err, ragview.ErrBackend)
			}
			continue
		}

		resp, err := ragjson.UnmarshalResponse(data)
		if err != nil {
			if status < 200 || status >= 300 {
				tracer().Errorf("POST %s: http %d with undecodable body", url, status)
				return nil, fmt.Errorf("POST %s: http %d: %w", path, status, ragview.ErrBackend)
			}
			return nil, fmt.Errorf("POST %s: %w", path, err)
		}
		if status < 200 || status >= 300 {
			if e, ok := resp.(ragview.ErrorResponse); ok {
				return e, nil
			}
			return nil, fmt.Errorf("POST %s: http %d: %w", path, status, ragview.ErrBackend)
		}
		return resp, nil
	}
}

func (c *Client) do(ctx context.Context, url string, body []byte) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)

	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return 0, nil, nil, err
	}
	return res.StatusCode, res.Header, data, nil
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

func retryAfter(v string) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

// backoff doubles minBackoff per attempt, capped at maxBackoff.
func backoff(attempt int, minBackoff, maxBackoff time.Duration) time.Duration {
	d := minBackoff << attempt
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}
	return d
}
