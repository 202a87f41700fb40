package processor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/pubmanifest-go/internal/domain"
	"github.com/quantmind-br/pubmanifest-go/internal/fetcher"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

const testManifest = `{
	"@context": ["https://schema.org", "https://www.w3.org/ns/pub-context"],
	"conformsTo": "https://www.w3.org/TR/pub-manifest/",
	"name": "Moby-Dick",
	"author": "Herman Melville",
	"readingOrder": ["c1.html", "c2.html"],
	"resources": [{"url": "toc.html", "rel": "contents"}]
}`

func newTestProcessor(opts Options) *Processor {
	client := fetcher.NewClient(fetcher.ClientOptions{Timeout: 5 * time.Second, MaxRetries: 1})
	logger := utils.NewLogger(utils.LoggerOptions{Level: "error", Format: "json"})
	return New(client, logger, opts)
}

func newPublicationServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/book/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html lang="en"><head>
<title>Moby-Dick</title>
<link rel="publication" href="manifest.json">
</head><body>
<nav role="doc-toc"><a href="c1.html">Loomings</a></nav>
</body></html>`))
	})
	mux.HandleFunc("/book/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(testManifest))
	})
	mux.HandleFunc("/book/toc.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav role="doc-toc"><a href="c1.html">Loomings</a></nav></body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFromJSON(t *testing.T) {
	p := newTestProcessor(Options{})

	result, err := p.FromJSON([]byte(testManifest), "https://example.org/book/manifest.json", nil, true)
	require.NoError(t, err)
	require.NotNil(t, result.Publication)

	pub := result.Publication
	require.Len(t, pub.Name, 1)
	assert.Equal(t, "Moby-Dick", pub.Name[0].Value)
	require.Len(t, pub.ReadingOrder, 2)
	assert.Equal(t, "https://example.org/book/c1.html", pub.ReadingOrder[0].URL)
	assert.False(t, result.Diagnostics.HasErrors())
}

func TestFromJSONInvalid(t *testing.T) {
	p := newTestProcessor(Options{})

	_, err := p.FromJSON([]byte(`{not json`), "https://example.org/m.json", nil, true)
	assert.ErrorIs(t, err, domain.ErrInvalidJSON)

	_, err = p.FromJSON([]byte(`["array", "not", "object"]`), "https://example.org/m.json", nil, true)
	assert.ErrorIs(t, err, domain.ErrInvalidJSON)
}

func TestFromURLManifestDirect(t *testing.T) {
	srv := newPublicationServer(t)
	p := newTestProcessor(Options{})

	result, err := p.FromURL(context.Background(), srv.URL+"/book/manifest.json")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/book/manifest.json", result.URL)
	require.NotNil(t, result.Publication)
	assert.Equal(t, srv.URL+"/book/c1.html", result.Publication.ReadingOrder[0].URL)
}

func TestFromURLEntryPage(t *testing.T) {
	srv := newPublicationServer(t)
	p := newTestProcessor(Options{FetchTOC: true})

	result, err := p.FromURL(context.Background(), srv.URL+"/book/")
	require.NoError(t, err)
	require.NotNil(t, result.Publication)

	// Manifest URL, not the entry page, is the base.
	assert.Equal(t, srv.URL+"/book/manifest.json", result.URL)
	assert.Contains(t, result.TOC, "Loomings")
}

func TestFromURLEmbeddedManifest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/book/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html lang="en"><head>
<title>Embedded</title>
<script id="manifest" type="application/ld+json">{
	"@context": ["https://schema.org", "https://www.w3.org/ns/pub-context"],
	"readingOrder": ["c1.html"]
}</script>
</head></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProcessor(Options{})

	result, err := p.FromURL(context.Background(), srv.URL+"/book/#manifest")
	require.NoError(t, err)
	require.NotNil(t, result.Publication)

	// Title backfills from the embedding page.
	require.Len(t, result.Publication.Name, 1)
	assert.Equal(t, "Embedded", result.Publication.Name[0].Value)
	assert.Equal(t, srv.URL+"/book/c1.html", result.Publication.ReadingOrder[0].URL)
}

func TestFromURLMissingEmbeddedManifest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>No script</title></head></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProcessor(Options{})

	_, err := p.FromURL(context.Background(), srv.URL+"/#manifest")
	assert.ErrorIs(t, err, domain.ErrNoEmbeddedManifest)
}

func TestFromURLNoPublicationLink(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Plain page</title></head></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProcessor(Options{})

	_, err := p.FromURL(context.Background(), srv.URL+"/")
	assert.ErrorIs(t, err, domain.ErrNoPublicationLink)
}

func TestFromURLWrongMediaType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("not a manifest"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProcessor(Options{})

	_, err := p.FromURL(context.Background(), srv.URL+"/")
	assert.ErrorIs(t, err, domain.ErrMediaType)
}

func TestFromURLRejectsNonHTTP(t *testing.T) {
	p := newTestProcessor(Options{})

	_, err := p.FromURL(context.Background(), "ftp://example.org/manifest.json")
	require.Error(t, err)
}

func TestTOCFailureIsNonFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(`{
	"@context": ["https://schema.org", "https://www.w3.org/ns/pub-context"],
	"name": "Broken TOC",
	"readingOrder": ["c1.html"],
	"links": [{"url": "missing.html", "rel": "contents"}]
}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProcessor(Options{FetchTOC: true})

	result, err := p.FromURL(context.Background(), srv.URL+"/manifest.json")
	require.NoError(t, err)
	assert.Empty(t, result.TOC)
	assert.NotEmpty(t, result.Diagnostics.Warnings())
}
