package manifest

import (
	"fmt"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

// TitleSource supplies the title and URL of the primary entry page a
// manifest was discovered from. Walking ancestor elements for the title's
// language is the collaborator's job, not the canonicalizer's.
type TitleSource interface {
	// Text is the title text, empty when the page has no usable title.
	Text() string
	// Language is the language attribute in effect on the title element.
	Language() string
	// URL is the final URL of the page itself.
	URL() string
}

// Options carries the contextual defaults for one canonicalization.
type Options struct {
	// Base is the URL relative references are resolved against.
	Base string
	// Title is the primary entry page, when the manifest was discovered
	// from one.
	Title TitleSource
	// DefaultLanguage and DefaultDirection backfill inLanguage and
	// inDirection when the manifest does not declare them.
	DefaultLanguage  string
	DefaultDirection string
	// Profile selects the term categories; nil means the base profile.
	Profile *Profile
}

// Canonicalize applies the structural normalization rules to a raw parsed
// manifest and returns the canonical manifest object. The input is never
// mutated. Steps run in a fixed order because later steps assume earlier
// normalization; any failure inside them is recorded as an error and
// canonicalization returns whatever partial object it had built.
func Canonicalize(log *diag.Log, raw map[string]any, opts Options) (out map[string]any) {
	profile := opts.Profile
	if profile == nil {
		profile = baseProfile
	}

	out = deepCopyMap(raw)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("canonicalization aborted: %v", r)
		}
	}()

	checkContext(log, out)

	backfillTitle(out, opts.Title)
	backfillLanguage(log, out, opts)
	defaultReadingOrder(out, opts.Title)

	coerceArrays(out, profile)
	coerceContributors(out, profile)
	coerceLinks(out, profile)
	localizeText(out, profile)
	absolutizeURLs(log, out, profile, opts.Base)

	runExtension(log, profile, out)

	return out
}

// checkContext warns when the manifest does not open its @context with the
// two expected identifiers in order, or does not declare a type. Neither is
// enforced beyond the warning.
func checkContext(log *diag.Log, m map[string]any) {
	ctx, _ := m["@context"].([]any)
	ok := len(ctx) >= 2 && ctx[0] == ContextSchema && ctx[1] == ContextPub
	log.Assert(ok, diag.SeverityWarning,
		fmt.Sprintf("@context should open with [%q, %q]", ContextSchema, ContextPub))
	log.Assert(m["type"] != nil, diag.SeverityWarning,
		"manifest does not declare a publication type")
}

// Step 1: copy the entry page title into name when the manifest has none.
// The title's own language wins over the default; a title without one is
// left as a bare string so the localization step tags it.
func backfillTitle(m map[string]any, title TitleSource) {
	if m["name"] != nil || title == nil || title.Text() == "" {
		return
	}
	if lang := title.Language(); lang != "" {
		m["name"] = map[string]any{"value": title.Text(), "language": lang}
		return
	}
	m["name"] = title.Text()
}

// Steps 2 and 3: backfill inLanguage/inDirection from the supplied
// defaults, then validate whatever inLanguage ended up set. An invalid tag
// is cleared so the localization step and the entity builders fall back to
// no language.
func backfillLanguage(log *diag.Log, m map[string]any, opts Options) {
	if m["inLanguage"] == nil && opts.DefaultLanguage != "" {
		m["inLanguage"] = opts.DefaultLanguage
	}
	if m["inDirection"] == nil && opts.DefaultDirection != "" {
		m["inDirection"] = opts.DefaultDirection
	}

	if raw, present := m["inLanguage"]; present {
		lang, isString := raw.(string)
		if !isString || !utils.ValidLanguageTag(lang) {
			log.Warnf("invalid language tag %v; value removed", raw)
			delete(m, "inLanguage")
		}
	}
}

// Step 4: a manifest found on an entry page with no reading order of its
// own reads that page.
func defaultReadingOrder(m map[string]any, title TitleSource) {
	if m["readingOrder"] != nil || title == nil || title.URL() == "" {
		return
	}
	m["readingOrder"] = title.URL()
}

// Step 5: wrap scalars into single-element arrays for every array-valued
// term, at the top level and inside entity/link objects.
func coerceArrays(m map[string]any, profile *Profile) {
	for _, term := range profile.ArrayTerms {
		if v, present := m[term]; present {
			m[term] = asArray(v)
		}
	}

	for _, term := range profile.EntityTerms {
		coerceInnerArrays(m[term], entityArrayTerms)
	}
	for _, term := range profile.LinkTerms {
		coerceInnerArrays(m[term], linkArrayTerms)
	}
}

func coerceInnerArrays(v any, terms []string) {
	arr, _ := v.([]any)
	for _, e := range arr {
		obj, isMap := e.(map[string]any)
		if !isMap {
			continue
		}
		for _, term := range terms {
			if inner, present := obj[term]; present {
				obj[term] = asArray(inner)
			}
		}
	}
}

// Step 6: bare strings in contributor positions become Person objects.
func coerceContributors(m map[string]any, profile *Profile) {
	for _, term := range profile.EntityTerms {
		arr, _ := m[term].([]any)
		for i, e := range arr {
			if s, isString := e.(string); isString {
				arr[i] = map[string]any{
					"type": []any{"Person"},
					"name": []any{s},
				}
			}
		}
	}
}

// Step 7: bare strings in link positions become LinkedResource objects.
func coerceLinks(m map[string]any, profile *Profile) {
	for _, term := range profile.LinkTerms {
		arr, _ := m[term].([]any)
		for i, e := range arr {
			if s, isString := e.(string); isString {
				arr[i] = map[string]any{
					"type": []any{"LinkedResource"},
					"url":  s,
				}
			}
		}
	}
}

// Step 8: wrap bare strings in localizable positions into {value, language}
// objects, tagging with the manifest's resolved language when one is set.
func localizeText(m map[string]any, profile *Profile) {
	lang, _ := m["inLanguage"].(string)

	for _, term := range profile.LocalizableTerms {
		if v, present := m[term]; present {
			m[term] = localizeValue(v, lang)
		}
	}

	for _, term := range profile.EntityTerms {
		localizeInner(m[term], []string{entityLocalizableTerm}, lang)
	}
	for _, term := range profile.LinkTerms {
		localizeInner(m[term], linkLocalizableTerms, lang)
	}
}

func localizeInner(v any, terms []string, lang string) {
	arr, _ := v.([]any)
	for _, e := range arr {
		obj, isMap := e.(map[string]any)
		if !isMap {
			continue
		}
		for _, term := range terms {
			if inner, present := obj[term]; present {
				obj[term] = localizeValue(inner, lang)
			}
		}
	}
}

func localizeValue(v any, lang string) any {
	switch t := v.(type) {
	case string:
		wrapped := map[string]any{"value": t}
		if lang != "" {
			wrapped["language"] = lang
		}
		return wrapped
	case []any:
		for i, e := range t {
			t[i] = localizeValue(e, lang)
		}
		return t
	default:
		return v
	}
}

// Step 9: resolve relative references against the base, at the top level
// and inside entity/link objects. A reference that cannot be parsed is left
// in place with a warning; the model builder decides its fate.
func absolutizeURLs(log *diag.Log, m map[string]any, profile *Profile, base string) {
	if base == "" {
		return
	}

	for _, term := range profile.URLTerms {
		if v, present := m[term]; present {
			m[term] = absolutizeValue(log, v, base)
		}
	}

	for _, term := range profile.EntityTerms {
		absolutizeInner(log, m[term], entityURLTerm, base)
	}
	for _, term := range profile.LinkTerms {
		absolutizeInner(log, m[term], linkURLTerm, base)
	}
}

func absolutizeInner(log *diag.Log, v any, term string, base string) {
	arr, _ := v.([]any)
	for _, e := range arr {
		if obj, isMap := e.(map[string]any); isMap {
			if inner, present := obj[term]; present {
				obj[term] = absolutizeValue(log, inner, base)
			}
		}
	}
}

func absolutizeValue(log *diag.Log, v any, base string) any {
	switch t := v.(type) {
	case string:
		resolved, err := utils.Absolutize(t, base)
		if err != nil {
			log.Warnf("cannot resolve %q against %q", t, base)
			return t
		}
		return resolved
	case []any:
		for i, e := range t {
			t[i] = absolutizeValue(log, e, base)
		}
		return t
	default:
		return v
	}
}

// Step 10: profile extension hook, invoked on the fully normalized object.
// A panicking extension is recorded as a warning; the canonical manifest
// produced so far is still returned.
func runExtension(log *diag.Log, profile *Profile, m map[string]any) {
	if profile.Extension == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("%s profile extension failed: %v", profile.Name, r)
		}
	}()
	profile.Extension(log, m)
}
