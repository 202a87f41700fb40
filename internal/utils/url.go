package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
	"github.com/quantmind-br/pubmanifest-go/internal/domain"
)

// Absolutize resolves a reference against a base URL and returns the
// absolute form. Resolving an already-absolute URL is the identity, so the
// operation is idempotent.
func Absolutize(ref, base string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid URL reference %q: %w", ref, err)
	}

	return baseURL.ResolveReference(refURL).String(), nil
}

// CheckURL verifies that address is a well-formed web URL with an http or
// https scheme. It is the strict variant used before dereferencing a URL
// over the network: failures are returned as errors since there is nothing
// else a fetch could do with an invalid address.
func CheckURL(address string) error {
	_, err := checkURL(address)
	return err
}

// CheckURLWith runs the same checks as CheckURL but records failures on the
// diagnostics log instead of returning them, and reports whether the
// address is usable. A low explicit port is flagged as a warning without
// making the address unusable.
func CheckURLWith(log *diag.Log, address string) bool {
	lowPort, err := checkURL(address)
	if err != nil {
		log.Errorf("invalid URL %q: %v", address, err)
		return false
	}
	log.Assert(!lowPort, diag.SeverityWarning,
		fmt.Sprintf("URL %q uses a port reserved for system services", address))
	return true
}

// checkURL reports whether the address carries an explicit port at or below
// 1024, and any hard validation failure.
func checkURL(address string) (lowPort bool, err error) {
	if address == "" {
		return false, domain.ErrInvalidURL
	}

	u, err := url.Parse(address)
	if err != nil {
		return false, err
	}

	// No scheme means the address is a bare filename, which cannot be
	// dereferenced on the web.
	if u.Scheme != "http" && u.Scheme != "https" {
		return false, fmt.Errorf("%w: scheme %q is not http or https", domain.ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return false, fmt.Errorf("%w: missing host", domain.ErrInvalidURL)
	}

	if port := u.Port(); port != "" {
		n, perr := strconv.Atoi(port)
		if perr != nil {
			return false, fmt.Errorf("%w: malformed port %q", domain.ErrInvalidURL, port)
		}
		if n <= 1024 {
			lowPort = true
		}
	}

	return lowPort, nil
}

// IsHTTPURL checks if a URL uses HTTP or HTTPS scheme.
func IsHTTPURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// SameURL compares two URLs for equality ignoring fragments.
func SameURL(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return a == b
	}
	ub, err := url.Parse(b)
	if err != nil {
		return a == b
	}
	ua.Fragment = ""
	ub.Fragment = ""
	return ua.String() == ub.String()
}

// FileURL converts a local filesystem path into a file URL usable as a
// resolution base for manifests read from disk.
func FileURL(path string) string {
	p := strings.ReplaceAll(path, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}
