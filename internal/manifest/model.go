package manifest

import (
	"time"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

// Publication is the typed manifest model: the validated, strongly-typed
// view of one canonical manifest. Absent fields are zero-valued; array
// fields are nil rather than empty when nothing valid was supplied. A
// Publication owns every Contributor, LinkedResource and LocalizableString
// it holds.
type Publication struct {
	URL        string   `json:"url,omitempty"`
	ID         string   `json:"id,omitempty"`
	Type       []string `json:"type,omitempty"`
	ConformsTo []string `json:"conformsTo,omitempty"`

	Name                 []LocalizableString `json:"name,omitempty"`
	AccessibilitySummary []LocalizableString `json:"accessibilitySummary,omitempty"`

	InLanguage  string    `json:"inLanguage,omitempty"`
	InDirection Direction `json:"inDirection,omitempty"`

	DateModified  string `json:"dateModified,omitempty"`
	DatePublished string `json:"datePublished,omitempty"`

	ReadingProgression Progression `json:"readingProgression"`

	Duration string `json:"duration,omitempty"`
	Abridged *bool  `json:"abridged,omitempty"`

	AccessMode           []string `json:"accessMode,omitempty"`
	AccessModeSufficient []string `json:"accessModeSufficient,omitempty"`
	AccessibilityFeature []string `json:"accessibilityFeature,omitempty"`
	AccessibilityHazard  []string `json:"accessibilityHazard,omitempty"`
	AccessibilityAPI     []string `json:"accessibilityAPI,omitempty"`
	AccessibilityControl []string `json:"accessibilityControl,omitempty"`

	Author      []Contributor `json:"author,omitempty"`
	Editor      []Contributor `json:"editor,omitempty"`
	Creator     []Contributor `json:"creator,omitempty"`
	Publisher   []Contributor `json:"publisher,omitempty"`
	Artist      []Contributor `json:"artist,omitempty"`
	Colorist    []Contributor `json:"colorist,omitempty"`
	Contributor []Contributor `json:"contributor,omitempty"`
	Illustrator []Contributor `json:"illustrator,omitempty"`
	Inker       []Contributor `json:"inker,omitempty"`
	Letterer    []Contributor `json:"letterer,omitempty"`
	Penciler    []Contributor `json:"penciler,omitempty"`
	ReadBy      []Contributor `json:"readBy,omitempty"`
	Translator  []Contributor `json:"translator,omitempty"`

	ReadingOrder []LinkedResource `json:"readingOrder,omitempty"`
	Resources    []LinkedResource `json:"resources,omitempty"`
	Links        []LinkedResource `json:"links,omitempty"`

	derived derivedLinks
}

// buildContext carries the model-construction context every entity builder
// needs: it is fixed before any field is set.
type buildContext struct {
	log          *diag.Log
	base         string
	language     string
	separateFile bool
}

// renamedTerms maps early-draft manifest keys onto their current names.
var renamedTerms = map[string]string{
	"language":  "inLanguage",
	"direction": "inDirection",
}

// setter applies one canonical value to its model field.
type setter func(p *Publication, bc *buildContext, v any)

// setters is the explicit dispatch table from canonical term to typed
// setter, constructed once. Terms without an entry are silently ignored so
// manifests can carry vocabulary this model does not understand.
var setters = newSetterTable()

// Build constructs the typed publication model from a canonical manifest.
// It is a single linear pass; field order does not matter because the
// base/language context is fixed up front. All schema violations are
// recorded on the log and never abort the pass.
func Build(log *diag.Log, canonical map[string]any, base string, separateFile bool) *Publication {
	p := &Publication{ReadingProgression: ProgressionLTR}

	bc := &buildContext{
		log:          log,
		base:         base,
		separateFile: separateFile,
	}
	if lang, ok := canonical["inLanguage"].(string); ok {
		bc.language = lang
	}

	for key, value := range canonical {
		if key == "@context" {
			continue
		}
		if renamed, aliased := renamedTerms[key]; aliased {
			key = renamed
		}
		if set, known := setters[key]; known {
			set(p, bc, value)
		}
	}

	return p
}

func newSetterTable() map[string]setter {
	m := map[string]setter{
		"url": func(p *Publication, bc *buildContext, v any) {
			if s, ok := v.(string); ok && utils.CheckURLWith(bc.log, s) {
				p.URL = s
			}
		},
		"id": func(p *Publication, bc *buildContext, v any) {
			if s, ok := v.(string); ok && s != "" {
				p.ID = s
			}
		},
		"type": func(p *Publication, bc *buildContext, v any) {
			p.Type = stringValues(v)
		},
		"conformsTo": func(p *Publication, bc *buildContext, v any) {
			p.ConformsTo = stringValues(v)
		},
		"name": func(p *Publication, bc *buildContext, v any) {
			p.Name = localizableArray(bc.log, v, bc.language)
		},
		"accessibilitySummary": func(p *Publication, bc *buildContext, v any) {
			p.AccessibilitySummary = localizableArray(bc.log, v, bc.language)
		},
		"inLanguage": func(p *Publication, bc *buildContext, v any) {
			s, ok := v.(string)
			if bc.log.Assert(ok && utils.ValidLanguageTag(s), diag.SeverityWarning,
				"inLanguage is not a valid language tag") {
				p.InLanguage = s
			}
		},
		"inDirection": func(p *Publication, bc *buildContext, v any) {
			s, _ := v.(string)
			dir, ok := ParseDirection(s)
			if bc.log.Assert(ok, diag.SeverityWarning,
				"inDirection must be ltr, rtl or auto") {
				p.InDirection = dir
			}
		},
		"dateModified": func(p *Publication, bc *buildContext, v any) {
			p.DateModified = checkDate(bc.log, "dateModified", v)
		},
		"datePublished": func(p *Publication, bc *buildContext, v any) {
			p.DatePublished = checkDate(bc.log, "datePublished", v)
		},
		"readingProgression": func(p *Publication, bc *buildContext, v any) {
			s, _ := v.(string)
			prog, ok := ParseProgression(s)
			if bc.log.Assert(ok, diag.SeverityWarning,
				"readingProgression must be ltr or rtl") {
				p.ReadingProgression = prog
			}
		},
		"duration": func(p *Publication, bc *buildContext, v any) {
			s, _ := v.(string)
			if bc.log.Assert(s != "" && ValidNormalPlayTime(s), diag.SeverityWarning,
				"duration does not match the normal-play-time grammar") {
				p.Duration = s
			}
		},
		"abridged": func(p *Publication, bc *buildContext, v any) {
			b, ok := v.(bool)
			if bc.log.Assert(ok, diag.SeverityWarning, "abridged must be a boolean") {
				p.Abridged = &b
			}
		},
		"accessMode": func(p *Publication, bc *buildContext, v any) {
			p.AccessMode = filterVocab(bc.log, "accessMode", v, accessModeVocab)
		},
		"accessModeSufficient": func(p *Publication, bc *buildContext, v any) {
			p.AccessModeSufficient = filterVocab(bc.log, "accessModeSufficient", v, accessModeVocab)
		},
		"accessibilityFeature": func(p *Publication, bc *buildContext, v any) {
			p.AccessibilityFeature = filterVocab(bc.log, "accessibilityFeature", v, accessibilityFeatureVocab)
		},
		"accessibilityHazard": func(p *Publication, bc *buildContext, v any) {
			p.AccessibilityHazard = filterVocab(bc.log, "accessibilityHazard", v, accessibilityHazardVocab)
		},
		"accessibilityAPI": func(p *Publication, bc *buildContext, v any) {
			p.AccessibilityAPI = filterVocab(bc.log, "accessibilityAPI", v, accessibilityAPIVocab)
		},
		"accessibilityControl": func(p *Publication, bc *buildContext, v any) {
			p.AccessibilityControl = filterVocab(bc.log, "accessibilityControl", v, accessibilityControlVocab)
		},
		"readingOrder": func(p *Publication, bc *buildContext, v any) {
			p.ReadingOrder = resourceArray(bc.log, v, bc)
		},
		"resources": func(p *Publication, bc *buildContext, v any) {
			p.Resources = resourceArray(bc.log, v, bc)
		},
		"links": func(p *Publication, bc *buildContext, v any) {
			p.Links = resourceArray(bc.log, v, bc)
		},
	}

	for role, personOnly := range contributorRoles {
		role, personOnly := role, personOnly
		m[role] = func(p *Publication, bc *buildContext, v any) {
			*roleSlot(p, role) = contributorArray(bc.log, v, bc, personOnly)
		}
	}

	return m
}

// roleSlot maps a contributor role term to its model field, keeping the set
// of recognized roles statically checkable.
func roleSlot(p *Publication, role string) *[]Contributor {
	switch role {
	case "author":
		return &p.Author
	case "editor":
		return &p.Editor
	case "creator":
		return &p.Creator
	case "publisher":
		return &p.Publisher
	case "artist":
		return &p.Artist
	case "colorist":
		return &p.Colorist
	case "contributor":
		return &p.Contributor
	case "illustrator":
		return &p.Illustrator
	case "inker":
		return &p.Inker
	case "letterer":
		return &p.Letterer
	case "penciler":
		return &p.Penciler
	case "readBy":
		return &p.ReadBy
	case "translator":
		return &p.Translator
	}
	panic("unknown contributor role " + role)
}

// dateLayouts are tried in order when validating dateModified and
// datePublished.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// checkDate validates an ISO-parseable date string, returning it unchanged
// on success so output round-trips, and empty with a warning on failure.
func checkDate(log *diag.Log, term string, v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		log.Warnf("%s must be a date string", term)
		return ""
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return s
		}
	}
	log.Warnf("%s %q is not a parseable date", term, s)
	return ""
}
