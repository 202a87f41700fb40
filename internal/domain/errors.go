package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidURL indicates an address that cannot be dereferenced
	ErrInvalidURL = errors.New("invalid URL")

	// ErrInvalidJSON indicates the manifest text is not well-formed JSON.
	// This is the only failure that aborts a conversion outright.
	ErrInvalidJSON = errors.New("manifest is not valid JSON")

	// ErrNoPublicationLink indicates an HTML entry page without a
	// <link rel="publication"> reference
	ErrNoPublicationLink = errors.New("no publication link found in document")

	// ErrNoEmbeddedManifest indicates a fragment publication link whose
	// target script element is missing
	ErrNoEmbeddedManifest = errors.New("embedded manifest not found in document")

	// ErrMediaType indicates a response with an unexpected media type
	ErrMediaType = errors.New("unexpected media type")

	// ErrRateLimited indicates rate limiting was encountered
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates a timeout occurred
	ErrTimeout = errors.New("timeout")
)

// FetchError represents an error during fetching
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// RetryableError indicates an error that can be retried
type RetryableError struct {
	Err        error
	RetryAfter int // Seconds to wait before retry, 0 if unknown
}

func (e *RetryableError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("retryable error (retry after %ds): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case 429, 502, 503, 504:
			return true
		}
	}

	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}
