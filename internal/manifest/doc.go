// Package manifest converts a semi-structured publication description into
// two derived artifacts: a canonical manifest and a typed publication model.
//
// The canonical manifest is the input JSON object with every polymorphic
// field coerced to one fixed shape: scalars wrapped into arrays, bare
// contributor strings turned into Person objects, bare link strings turned
// into LinkedResource objects, bare text wrapped into language-tagged
// values, and relative URLs resolved against the manifest base. The
// Canonicalize function performs this transform; a Profile externalizes
// which property names take which shape so the same algorithm serves
// different profiles.
//
// Build then walks the canonical manifest term by term and produces a
// Publication, validating every value and recording schema violations on a
// diagnostics log. Nothing in either stage raises past its own top-level
// guard: callers always receive a best-effort canonical manifest and model
// together with the full diagnostics report.
//
//	log := diag.New()
//	canonical := manifest.Canonicalize(log, raw, manifest.Options{
//	    Base:            "https://example.org/manifest.json",
//	    DefaultLanguage: "en",
//	    Profile:         manifest.ProfileFor(raw),
//	})
//	pub := manifest.Build(log, canonical, "https://example.org/manifest.json", true)
//
// Array-valued attributes that end up with zero valid elements are surfaced
// as absent (nil), never as empty collections, so consumers only ever check
// for absence.
package manifest
