package fetcher

import (
	"mime"
	"strings"
)

// IsJSONType reports whether a Content-Type header names a JSON payload,
// including structured suffix types such as application/ld+json.
func IsJSONType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// IsHTMLType reports whether a Content-Type header names an HTML document.
func IsHTMLType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
