// Package fetcher retrieves entry pages and manifests over HTTP with
// retry, backoff and media type checking.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/quantmind-br/pubmanifest-go/internal/domain"
)

const defaultUserAgent = "pubmanifest-go/1.0"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 16 << 20

// Client is an HTTP client with retry support.
type Client struct {
	httpClient *http.Client
	userAgent  string
	retrier    *Retrier
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		UserAgent:  defaultUserAgent,
	}
}

// NewClient creates a new Client
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	retrier := NewRetrier(RetrierOptions{
		MaxRetries:      opts.MaxRetries,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	})

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		userAgent:  opts.UserAgent,
		retrier:    retrier,
	}
}

// Get fetches a URL with retry on transient failures.
func (c *Client) Get(ctx context.Context, url string) (*domain.Response, error) {
	var resp *domain.Response
	err := c.retrier.Retry(ctx, func() error {
		var err error
		resp, err = c.doRequest(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// doRequest performs the actual HTTP request
func (c *Client) doRequest(ctx context.Context, targetURL string) (*domain.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/ld+json, application/json, text/html;q=0.9, */*;q=0.1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, domain.NewFetchError(targetURL, 0, fmt.Errorf("%w: %v", domain.ErrTimeout, err))
		}
		return nil, domain.NewFetchError(targetURL, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if ShouldRetryStatus(resp.StatusCode) {
			cause := fmt.Errorf("HTTP %d", resp.StatusCode)
			if resp.StatusCode == http.StatusTooManyRequests {
				cause = fmt.Errorf("%w: HTTP %d", domain.ErrRateLimited, resp.StatusCode)
			}
			return nil, &domain.RetryableError{
				Err:        domain.NewFetchError(targetURL, resp.StatusCode, cause),
				RetryAfter: int(ParseRetryAfter(resp.Header.Get("Retry-After")).Seconds()),
			}
		}
		return nil, domain.NewFetchError(targetURL, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.NewFetchError(targetURL, 0, fmt.Errorf("failed to read response body: %w", err))
	}

	// resp.Request carries the URL of the last request in the redirect
	// chain, which is what relative references resolve against.
	finalURL := targetURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		Headers:     resp.Header,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         finalURL,
	}, nil
}
