package domain

import "net/http"

// Response is a fetched HTTP resource.
type Response struct {
	StatusCode  int
	Body        []byte
	Headers     http.Header
	ContentType string
	// URL is the final URL after redirects. Callers use it as the base
	// for resolving relative references found in the body.
	URL string
}
