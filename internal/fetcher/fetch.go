package fetcher

import (
	"bytes"
	"context"
	"fmt"

	"github.com/quantmind-br/pubmanifest-go/internal/domain"
	"github.com/quantmind-br/pubmanifest-go/internal/htmldoc"
)

// MediaCheck reports whether a Content-Type header is acceptable.
type MediaCheck func(contentType string) bool

// FetchText fetches a URL and verifies the served media type when check is
// non-nil. A mismatch is a FetchError wrapping ErrMediaType.
func (c *Client) FetchText(ctx context.Context, url string, check MediaCheck) (*domain.Response, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if check != nil && !check(resp.ContentType) {
		return nil, &domain.FetchError{
			URL:        resp.URL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: served %q", domain.ErrMediaType, resp.ContentType),
		}
	}
	return resp, nil
}

// FetchDocument fetches an HTML page and parses it. The returned document
// carries the final URL after redirects.
func (c *Client) FetchDocument(ctx context.Context, url string) (*htmldoc.Document, error) {
	resp, err := c.FetchText(ctx, url, IsHTMLType)
	if err != nil {
		return nil, err
	}
	doc, err := htmldoc.Parse(bytes.NewReader(resp.Body), resp.URL)
	if err != nil {
		return nil, &domain.FetchError{URL: resp.URL, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}
	return doc, nil
}
