package manifest

import (
	"github.com/quantmind-br/pubmanifest-go/internal/diag"
)

// filterVocab normalizes a scalar-or-array input to a string sequence and
// keeps only the terms present in the controlled vocabulary. One warning is
// logged per rejected item. Returns nil when nothing survives.
func filterVocab(log *diag.Log, term string, raw any, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}

	var out []string
	for _, e := range asArray(raw) {
		s, ok := e.(string)
		if !ok {
			log.Warnf("%s: ignoring non-string value %v", term, e)
			continue
		}
		if !allowedSet[s] {
			log.Warnf("%s: %q is not a recognized value", term, s)
			continue
		}
		out = append(out, s)
	}
	return out
}
