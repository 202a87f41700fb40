package manifest

import "github.com/quantmind-br/pubmanifest-go/internal/diag"

// Context identifiers every publication manifest is expected to declare, in
// this order, in its @context array.
const (
	ContextSchema = "https://schema.org"
	ContextPub    = "https://www.w3.org/ns/pub-context"
)

// Direction is a closed enumeration of text directions.
type Direction string

const (
	DirectionLTR  Direction = "ltr"
	DirectionRTL  Direction = "rtl"
	DirectionAuto Direction = "auto"
)

// ParseDirection maps a raw value onto the Direction enumeration.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionLTR, DirectionRTL, DirectionAuto:
		return Direction(s), true
	}
	return "", false
}

// Progression is a closed enumeration of reading progression directions.
type Progression string

const (
	ProgressionLTR Progression = "ltr"
	ProgressionRTL Progression = "rtl"
)

// ParseProgression maps a raw value onto the Progression enumeration.
func ParseProgression(s string) (Progression, bool) {
	switch Progression(s) {
	case ProgressionLTR, ProgressionRTL:
		return Progression(s), true
	}
	return "", false
}

// contributorRoles maps each contributor term to whether the position is
// restricted to persons. Roles describing hands-on creative work on the
// content itself only make sense for a person.
var contributorRoles = map[string]bool{
	"author":      false,
	"editor":      false,
	"creator":     false,
	"publisher":   false,
	"artist":      true,
	"colorist":    true,
	"contributor": false,
	"illustrator": true,
	"inker":       true,
	"letterer":    true,
	"penciler":    true,
	"readBy":      true,
	"translator":  false,
}

// Profile externalizes which property names are array-valued,
// contributor-shaped, link-shaped, localizable or URL-valued, so the
// canonicalization algorithm itself stays schema-agnostic. Extension, when
// present, is invoked last on the fully normalized object.
type Profile struct {
	Name string
	// IDs are the conformsTo identifiers selecting this profile.
	IDs []string

	ArrayTerms       []string
	EntityTerms      []string
	LinkTerms        []string
	LocalizableTerms []string
	URLTerms         []string

	Extension func(log *diag.Log, canonical map[string]any)
}

// Term shapes inside contributor and link objects. These are fixed by the
// entity definitions rather than by the profile.
var (
	entityArrayTerms      = []string{"type", "name"}
	entityLocalizableTerm = "name"
	entityURLTerm         = "url"

	linkArrayTerms       = []string{"type", "name", "rel"}
	linkLocalizableTerms = []string{"name", "description"}
	linkURLTerm          = "url"
)

// baseProfile covers the common publication manifest vocabulary.
var baseProfile = &Profile{
	Name: "base",
	IDs:  []string{"https://www.w3.org/TR/pub-manifest/"},

	ArrayTerms: appendRoles([]string{
		"type",
		"conformsTo",
		"name",
		"accessibilitySummary",
		"accessMode",
		"accessModeSufficient",
		"accessibilityFeature",
		"accessibilityHazard",
		"accessibilityAPI",
		"accessibilityControl",
		"readingOrder",
		"resources",
		"links",
	}),
	EntityTerms:      roleTerms(),
	LinkTerms:        []string{"readingOrder", "resources", "links"},
	LocalizableTerms: []string{"name", "accessibilitySummary"},
	URLTerms:         []string{"url"},
}

// audiobooksProfile layers the audiobook-specific checks on top of the base
// term categories.
var audiobooksProfile = &Profile{
	Name: "audiobooks",
	IDs:  []string{"https://www.w3.org/TR/audiobooks/"},

	ArrayTerms:       baseProfile.ArrayTerms,
	EntityTerms:      baseProfile.EntityTerms,
	LinkTerms:        baseProfile.LinkTerms,
	LocalizableTerms: baseProfile.LocalizableTerms,
	URLTerms:         baseProfile.URLTerms,

	Extension: audiobooksExtension,
}

// ProfileFor selects the profile declared by the raw manifest's conformsTo
// value, falling back to the base profile.
func ProfileFor(raw map[string]any) *Profile {
	for _, id := range stringValues(raw["conformsTo"]) {
		for _, known := range audiobooksProfile.IDs {
			if id == known {
				return audiobooksProfile
			}
		}
	}
	return baseProfile
}

func roleTerms() []string {
	terms := make([]string, 0, len(contributorRoles))
	for role := range contributorRoles {
		terms = append(terms, role)
	}
	return terms
}

func appendRoles(terms []string) []string {
	return append(terms, roleTerms()...)
}

// Controlled vocabularies for the six accessibility term sets.
var (
	accessModeVocab = []string{
		"auditory", "chartOnVisual", "chemOnVisual", "colorDependent",
		"diagramOnVisual", "mathOnVisual", "musicOnVisual", "tactile",
		"textOnVisual", "textual", "visual",
	}

	accessibilityFeatureVocab = []string{
		"alternativeText", "annotations", "audioDescription", "bookmarks",
		"braille", "captions", "ChemML", "describedMath",
		"displayTransformability", "highContrastAudio", "highContrastDisplay",
		"index", "largePrint", "latex", "longDescription", "MathML", "none",
		"printPageNumbers", "readingOrder", "rubyAnnotations", "signLanguage",
		"structuralNavigation", "synchronizedAudioText", "tableOfContents",
		"taggedPDF", "tactileGraphic", "tactileObject", "timingControl",
		"transcript", "ttsMarkup", "unlocked",
	}

	accessibilityHazardVocab = []string{
		"flashing", "noFlashingHazard", "motionSimulation",
		"noMotionSimulationHazard", "sound", "noSoundHazard", "unknown",
		"none",
	}

	accessibilityAPIVocab = []string{
		"AndroidAccessibility", "ARIA", "ATK", "AT-SPI",
		"BlackberryAccessibility", "iAccessible2", "iOSAccessibility",
		"JavaAccessibility", "MacOSXAccessibility", "MSAA", "UIAutomation",
	}

	accessibilityControlVocab = []string{
		"fullAudioControl", "fullKeyboardControl", "fullMouseControl",
		"fullSwitchControl", "fullTouchControl", "fullVideoControl",
		"fullVoiceControl",
	}
)
