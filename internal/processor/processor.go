// Package processor coordinates the full conversion pipeline: locating a
// manifest from an entry page or direct URL, canonicalizing it, building
// the typed publication and resolving its table of contents.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
	"github.com/quantmind-br/pubmanifest-go/internal/domain"
	"github.com/quantmind-br/pubmanifest-go/internal/fetcher"
	"github.com/quantmind-br/pubmanifest-go/internal/htmldoc"
	"github.com/quantmind-br/pubmanifest-go/internal/manifest"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

// Options contains options for creating a Processor
type Options struct {
	// DefaultLanguage and DefaultDirection backfill inLanguage and
	// inDirection on manifests that do not declare them.
	DefaultLanguage  string
	DefaultDirection string
	// FetchTOC resolves and retrieves the table of contents document
	// referenced by the publication, when it has one.
	FetchTOC bool
}

// Result is the outcome of one conversion.
type Result struct {
	// URL the manifest was resolved from. Relative references in the
	// manifest were resolved against it.
	URL string
	// Canonical is the canonical manifest object.
	Canonical map[string]any
	// Publication is the typed model built from the canonical manifest.
	Publication *manifest.Publication
	// Diagnostics collects the warnings and errors produced along the way.
	Diagnostics *diag.Log
	// TOC is the outer HTML of the table of contents element, when one
	// was found and fetched.
	TOC string
}

// Processor runs conversions against remote or in-memory sources.
type Processor struct {
	client *fetcher.Client
	logger *utils.Logger
	opts   Options
}

// New creates a Processor. A nil logger falls back to the default logger.
func New(client *fetcher.Client, logger *utils.Logger, opts Options) *Processor {
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	return &Processor{
		client: client,
		logger: logger.WithComponent("processor"),
		opts:   opts,
	}
}

// FromJSON converts manifest text already in hand. base is the URL the
// manifest was obtained from, title the entry page it was discovered on
// (nil when there was none) and separateFile whether the manifest lives
// in its own file rather than embedded in the entry page.
func (p *Processor) FromJSON(text []byte, base string, title manifest.TitleSource, separateFile bool) (*Result, error) {
	var raw any
	if err := json.Unmarshal(text, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}

	object, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not an object", domain.ErrInvalidJSON)
	}

	log := diag.New()
	profile := manifest.ProfileFor(object)

	canonical := manifest.Canonicalize(log, object, manifest.Options{
		Base:             base,
		Title:            title,
		DefaultLanguage:  p.opts.DefaultLanguage,
		DefaultDirection: p.opts.DefaultDirection,
		Profile:          profile,
	})

	publication := manifest.Build(log, canonical, base, separateFile)

	p.logger.Debug().
		Str("url", base).
		Int("warnings", len(log.Warnings())).
		Int("errors", len(log.Errors())).
		Msg("Conversion finished")

	return &Result{
		URL:         base,
		Canonical:   canonical,
		Publication: publication,
		Diagnostics: log,
	}, nil
}

// FromURL fetches and converts the publication at rawURL. The URL may
// point at a manifest directly, or at an HTML entry page that links to or
// embeds one. A fragment on an entry page URL names the id of the script
// element holding an embedded manifest.
func (p *Processor) FromURL(ctx context.Context, rawURL string) (*Result, error) {
	if p.client == nil {
		return nil, fmt.Errorf("processor has no HTTP client")
	}

	fetchURL, fragment := splitFragment(rawURL)
	if err := utils.CheckURL(fetchURL); err != nil {
		return nil, err
	}

	p.logger.Info().Str("url", fetchURL).Msg("Fetching publication")

	resp, err := p.client.Get(ctx, fetchURL)
	if err != nil {
		return nil, err
	}

	if fetcher.IsHTMLType(resp.ContentType) {
		doc, err := htmldoc.Parse(bytes.NewReader(resp.Body), resp.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry page: %w", err)
		}
		return p.fromEntryPage(ctx, doc, fragment)
	}

	if !fetcher.IsJSONType(resp.ContentType) {
		return nil, fmt.Errorf("%w: %s served %q", domain.ErrMediaType, resp.URL, resp.ContentType)
	}

	result, err := p.FromJSON(resp.Body, resp.URL, nil, true)
	if err != nil {
		return nil, err
	}
	p.resolveTOC(ctx, result, nil)
	return result, nil
}

// fromEntryPage converts the publication reachable from a parsed entry
// page: an embedded manifest when fragment names one, the linked manifest
// otherwise.
func (p *Processor) fromEntryPage(ctx context.Context, doc *htmldoc.Document, fragment string) (*Result, error) {
	title := doc.TitleInfo()

	if fragment != "" {
		text, ok := doc.EmbeddedManifest(fragment)
		if !ok {
			return nil, fmt.Errorf("%w: no script with id %q", domain.ErrNoEmbeddedManifest, fragment)
		}
		result, err := p.FromJSON([]byte(text), doc.URL(), title, false)
		if err != nil {
			return nil, err
		}
		p.resolveTOC(ctx, result, doc)
		return result, nil
	}

	href, ok := doc.PublicationLink()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoPublicationLink, doc.URL())
	}

	manifestURL, err := utils.Absolutize(href, doc.URL())
	if err != nil {
		return nil, fmt.Errorf("invalid publication link %q: %w", href, err)
	}

	// A same-document link points at an embedded manifest.
	if target, frag := splitFragment(manifestURL); frag != "" && utils.SameURL(target, doc.URL()) {
		return p.fromEntryPage(ctx, doc, frag)
	}

	p.logger.Debug().Str("url", manifestURL).Msg("Following publication link")

	resp, err := p.client.FetchText(ctx, manifestURL, fetcher.IsJSONType)
	if err != nil {
		return nil, err
	}

	result, err := p.FromJSON(resp.Body, resp.URL, title, true)
	if err != nil {
		return nil, err
	}
	p.resolveTOC(ctx, result, doc)
	return result, nil
}

// resolveTOC locates the publication's table of contents and stores its
// outer HTML on the result. Failures degrade to a warning; the conversion
// itself stands.
func (p *Processor) resolveTOC(ctx context.Context, result *Result, entry *htmldoc.Document) {
	if !p.opts.FetchTOC || result.Publication == nil {
		return
	}
	link := result.Publication.TableOfContents()
	if link == nil {
		return
	}

	target, _ := splitFragment(link.URL)

	if entry != nil && utils.SameURL(target, entry.URL()) {
		if toc := entry.TOCElement(); toc != nil {
			result.TOC = toc.HTML()
			return
		}
		result.Diagnostics.Warnf("contents resource %s has no table of contents element", link.URL)
		return
	}

	doc, err := p.client.FetchDocument(ctx, target)
	if err != nil {
		result.Diagnostics.Warnf("could not fetch contents resource %s: %v", link.URL, err)
		return
	}
	toc := doc.TOCElement()
	if toc == nil {
		result.Diagnostics.Warnf("contents resource %s has no table of contents element", link.URL)
		return
	}
	result.TOC = toc.HTML()
}

// splitFragment separates a URL from its fragment.
func splitFragment(rawURL string) (string, string) {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		return rawURL[:i], rawURL[i+1:]
	}
	return rawURL, ""
}
