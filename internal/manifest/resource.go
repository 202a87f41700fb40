package manifest

import (
	"regexp"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

// LinkedResource is a URL plus descriptive metadata and relation tags, used
// by the readingOrder, resources and links collections.
type LinkedResource struct {
	URL            string              `json:"url"`
	EncodingFormat string              `json:"encodingFormat,omitempty"`
	Name           []LocalizableString `json:"name,omitempty"`
	Description    *LocalizableString  `json:"description,omitempty"`
	Rel            []string            `json:"rel,omitempty"`
	Duration       string              `json:"duration,omitempty"`
	Extra          map[string]any      `json:"extra,omitempty"`
}

var resourceKnownKeys = map[string]bool{
	"type":           true,
	"url":            true,
	"encodingFormat": true,
	"name":           true,
	"description":    true,
	"rel":            true,
	"duration":       true,
}

// Normal play time per RFC 2326: either seconds with an optional fraction,
// or hours:minutes:seconds with two-digit minutes and seconds.
var normalPlayTimeRe = regexp.MustCompile(`^(?:npt:)?(?:\d+:[0-5]\d:[0-5]\d(?:\.\d+)?|\d+(?:\.\d+)?)$`)

// ValidNormalPlayTime reports whether s matches the normal-play-time
// grammar used for durations.
func ValidNormalPlayTime(s string) bool {
	return normalPlayTimeRe.MatchString(s)
}

// HasRel reports whether the resource carries the given relation value.
func (r *LinkedResource) HasRel(rel string) bool {
	for _, v := range r.Rel {
		if v == rel {
			return true
		}
	}
	return false
}

// buildResource validates and constructs a LinkedResource from either a
// bare string or an object. It returns nil when the input is invalid, after
// recording the reason. When the manifest lives in a separate file, a
// resource resolving to the manifest's own URL is rejected: a manifest must
// not link to itself.
func buildResource(log *diag.Log, raw any, bc *buildContext) *LinkedResource {
	switch t := raw.(type) {
	case string:
		return resolveResourceURL(log, &LinkedResource{}, t, bc)
	case map[string]any:
		return buildResourceObject(log, t, bc)
	default:
		log.Errorf("linked resource must be a string or an object, got %v", raw)
		return nil
	}
}

func buildResourceObject(log *diag.Log, obj map[string]any, bc *buildContext) *LinkedResource {
	r := &LinkedResource{}

	rawURL, _ := obj["url"].(string)
	if !log.Assert(rawURL != "", diag.SeverityError, "linked resource requires a url") {
		return nil
	}
	if resolveResourceURL(log, r, rawURL, bc) == nil {
		return nil
	}

	if ef, ok := obj["encodingFormat"].(string); ok && ef != "" {
		r.EncodingFormat = ef
	}

	r.Name = localizableArray(log, obj["name"], bc.language)

	if rawDesc, present := obj["description"]; present {
		if desc, ok := newLocalizableString(log, rawDesc, bc.language); ok {
			r.Description = &desc
		}
	}

	if rel := stringValues(obj["rel"]); len(rel) > 0 {
		r.Rel = rel
	}

	if dur, ok := obj["duration"].(string); ok && dur != "" {
		if log.Assert(ValidNormalPlayTime(dur), diag.SeverityWarning,
			"duration "+dur+" does not match the normal-play-time grammar") {
			r.Duration = dur
		}
	}

	r.Extra = copyExtra(obj, resourceKnownKeys)

	return r
}

func resolveResourceURL(log *diag.Log, r *LinkedResource, rawURL string, bc *buildContext) *LinkedResource {
	if !log.Assert(rawURL != "", diag.SeverityError, "linked resource requires a url") {
		return nil
	}

	resolved, err := utils.Absolutize(rawURL, bc.base)
	if err != nil {
		log.Errorf("linked resource URL %q cannot be resolved: %v", rawURL, err)
		return nil
	}

	if bc.separateFile && !log.Assert(!utils.SameURL(resolved, bc.base), diag.SeverityError,
		"a manifest must not list itself as a resource: "+resolved) {
		return nil
	}

	// URL sanity issues are recorded but the resource is kept; only a
	// missing URL or a self-reference invalidates it.
	utils.CheckURLWith(log, resolved)

	r.URL = resolved
	return r
}

// resourceArray maps a scalar-or-array input over buildResource, discarding
// invalid entries. Returns nil when nothing survives.
func resourceArray(log *diag.Log, raw any, bc *buildContext) []LinkedResource {
	var out []LinkedResource
	for _, e := range asArray(raw) {
		if r := buildResource(log, e, bc); r != nil {
			out = append(out, *r)
		}
	}
	return out
}
