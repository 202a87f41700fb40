package htmldoc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TitleInfo describes the document title used to backfill a missing
// publication name during canonicalization.
type TitleInfo struct {
	text     string
	language string
	url      string
}

// Text returns the trimmed title text.
func (t TitleInfo) Text() string { return t.text }

// Language returns the language governing the title element, resolved
// through the lang attribute cascade.
func (t TitleInfo) Language() string { return t.language }

// URL returns the document URL the title belongs to.
func (t TitleInfo) URL() string { return t.url }

// TitleInfo extracts the page title and its governing language. The zero
// value is returned when the document has no title element.
func (d *Document) TitleInfo() TitleInfo {
	title := d.QuerySelector("title")
	if title == nil {
		return TitleInfo{url: d.url}
	}
	return TitleInfo{
		text:     title.Text(),
		language: title.AttrOrAncestor("lang"),
		url:      d.url,
	}
}

// PublicationLink returns the href of the first link element whose rel
// tokens include "publication". The href is returned as written in the
// document, not resolved.
func (d *Document) PublicationLink() (string, bool) {
	link := d.QuerySelector(`link[rel~="publication"]`)
	if link == nil {
		return "", false
	}
	href := link.Attr("href")
	if href == "" {
		return "", false
	}
	return href, true
}

// EmbeddedManifest returns the text of the application/ld+json script
// element with the given id.
func (d *Document) EmbeddedManifest(id string) (string, bool) {
	var text string
	found := false
	d.doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if sid, _ := s.Attr("id"); sid == id {
			text = s.Text()
			found = true
			return false
		}
		return true
	})
	return text, found
}

// TOCElement locates a table-of-contents element: any element with the
// doc-toc role, a nav whose epub:type carries doc-toc, or the document's
// first nav.
func (d *Document) TOCElement() *Element {
	if e := d.QuerySelector(`[role="doc-toc"]`); e != nil {
		return e
	}

	var match *goquery.Selection
	d.doc.Find("nav").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, _ := s.Attr("epub:type"); strings.Contains(v, "doc-toc") {
			match = s
			return false
		}
		return true
	})
	if match != nil {
		return &Element{sel: match}
	}

	return d.QuerySelector("nav")
}
