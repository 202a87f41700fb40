package manifest

import (
	"fmt"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

// LocalizableString is a string value tagged with the language it is
// expressed in.
type LocalizableString struct {
	Value    string `json:"value"`
	Language string `json:"language,omitempty"`
}

// newLocalizableString builds a LocalizableString from a bare string or a
// {value, language} object. The second return value is false when no value
// is present, in which case the entry is dropped by its caller. A malformed
// language tag is cleared with a warning but does not drop the entry.
func newLocalizableString(log *diag.Log, raw any, defaultLanguage string) (LocalizableString, bool) {
	var ls LocalizableString

	switch t := raw.(type) {
	case string:
		ls.Value = t
		ls.Language = defaultLanguage
	case map[string]any:
		if v, ok := t["value"].(string); ok {
			ls.Value = v
		}
		if lang, ok := t["language"].(string); ok {
			ls.Language = lang
		} else {
			ls.Language = defaultLanguage
		}
	}

	if !log.Assert(ls.Value != "", diag.SeverityError, "localizable string has no value") {
		return LocalizableString{}, false
	}

	if ls.Language != "" && !utils.ValidLanguageTag(ls.Language) {
		log.Warnf("invalid language tag %q on %q; tag removed", ls.Language, ls.Value)
		ls.Language = ""
	}

	return ls, true
}

// localizableArray maps a scalar-or-array input into a sequence of
// LocalizableString values, filtering out invalid entries. When nothing
// survives it returns nil rather than an empty sequence.
func localizableArray(log *diag.Log, raw any, defaultLanguage string) []LocalizableString {
	var out []LocalizableString
	for _, e := range asArray(raw) {
		if ls, ok := newLocalizableString(log, e, defaultLanguage); ok {
			out = append(out, ls)
		}
	}
	return out
}

// String renders the value with its language tag for human-readable
// reports.
func (ls LocalizableString) String() string {
	if ls.Language == "" {
		return ls.Value
	}
	return fmt.Sprintf("%s (%s)", ls.Value, ls.Language)
}
