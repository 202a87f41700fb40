package utils

import (
	"errors"

	"golang.org/x/text/language"
)

// ValidLanguageTag reports whether tag is shaped like a BCP 47 language
// tag. Unknown but well-formed subtags are accepted: the check guards the
// tag's structure, not membership in the language registry.
func ValidLanguageTag(tag string) bool {
	if tag == "" {
		return false
	}

	_, err := language.Parse(tag)
	if err == nil {
		return true
	}

	// language.Parse reports unknown-but-well-formed subtags as a
	// ValueError while still producing a usable tag.
	var verr language.ValueError
	return errors.As(err, &verr)
}
