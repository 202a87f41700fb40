// Package htmldoc wraps a parsed HTML document behind the narrow surface
// the conversion pipeline needs: the final document URL, single-element
// selector queries, attribute lookup with ancestor fallback, and the
// discovery helpers locating a publication link, the page title and a table
// of contents. The pipeline never touches the DOM through any other path.
package htmldoc

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page together with its final URL.
type Document struct {
	doc *goquery.Document
	url string
}

// Parse reads and parses an HTML document. finalURL is the URL the
// document was actually served from, after redirects.
func Parse(r io.Reader, finalURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc, url: finalURL}, nil
}

// URL returns the final document URL.
func (d *Document) URL() string {
	return d.url
}

// QuerySelector returns the first element matching the CSS selector, or nil
// when nothing matches.
func (d *Document) QuerySelector(selector string) *Element {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel}
}

// Element is a single element of a parsed document.
type Element struct {
	sel *goquery.Selection
}

// TagName returns the element's tag name.
func (e *Element) TagName() string {
	node := e.sel.Get(0)
	if node == nil || node.Type != html.ElementNode {
		return ""
	}
	return node.Data
}

// Attr returns the value of the named attribute, or the empty string.
func (e *Element) Attr(name string) string {
	v, _ := e.sel.Attr(name)
	return v
}

// AttrOrAncestor returns the value of the named attribute on the element
// or, when unset, on the nearest ancestor carrying it. This is how the
// lang and dir attributes cascade in HTML.
func (e *Element) AttrOrAncestor(name string) string {
	for s := e.sel; s.Length() > 0; s = s.Parent() {
		if v, ok := s.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}

// Text returns the element's trimmed text content.
func (e *Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

// HTML returns the element's outer HTML, or the empty string when it
// cannot be serialized.
func (e *Element) HTML() string {
	h, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return h
}
