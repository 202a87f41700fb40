package manifest

import (
	"strings"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
)

// audiobooksExtension runs after the structural steps when the manifest
// conforms to the audiobooks profile. It only adds diagnostics; the
// canonical shape is already fixed by then.
func audiobooksExtension(log *diag.Log, m map[string]any) {
	hasAudiobook := false
	for _, t := range stringValues(m["type"]) {
		if t == "Audiobook" {
			hasAudiobook = true
			break
		}
	}
	log.Assert(hasAudiobook, diag.SeverityWarning,
		"an audiobook manifest should declare the Audiobook type")

	arr, _ := m["readingOrder"].([]any)
	for _, e := range arr {
		obj, isMap := e.(map[string]any)
		if !isMap {
			continue
		}
		ef, present := obj["encodingFormat"].(string)
		if !present || ef == "" {
			continue
		}
		if !strings.HasPrefix(ef, "audio/") {
			log.Warnf("audiobook reading order entry has non-audio encoding format %q", ef)
		}
	}
}
