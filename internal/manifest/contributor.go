package manifest

import (
	"github.com/quantmind-br/pubmanifest-go/internal/diag"
	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

// Contributor is a person or organization associated with a creative role.
// The Type set tags the variant: it contains "Person", "Organization", or
// both.
type Contributor struct {
	Name  []LocalizableString `json:"name"`
	ID    string              `json:"id,omitempty"`
	URL   string              `json:"url,omitempty"`
	Type  []string            `json:"type"`
	Extra map[string]any      `json:"extra,omitempty"`
}

var contributorKnownKeys = map[string]bool{
	"type": true,
	"name": true,
	"id":   true,
	"url":  true,
}

// IsPerson reports whether the contributor's type set includes Person.
func (c *Contributor) IsPerson() bool {
	for _, t := range c.Type {
		if t == "Person" {
			return true
		}
	}
	return false
}

// buildContributor validates and constructs a Contributor from either a
// bare string or an object. It returns nil when the input is invalid, after
// recording the reason; the caller's filter drops nil results.
func buildContributor(log *diag.Log, raw any, bc *buildContext, personOnly bool) *Contributor {
	switch t := raw.(type) {
	case string:
		name, ok := newLocalizableString(log, t, bc.language)
		if !ok {
			return nil
		}
		return &Contributor{
			Name: []LocalizableString{name},
			Type: []string{"Person"},
		}
	case map[string]any:
		return buildContributorObject(log, t, bc, personOnly)
	default:
		log.Errorf("contributor must be a string or an object, got %v", raw)
		return nil
	}
}

func buildContributorObject(log *diag.Log, obj map[string]any, bc *buildContext, personOnly bool) *Contributor {
	c := &Contributor{}

	c.Name = localizableArray(log, obj["name"], bc.language)
	if !log.Assert(c.Name != nil, diag.SeverityError, "contributor requires a name") {
		return nil
	}

	if rawType, present := obj["type"]; present {
		c.Type = stringValues(rawType)
		if !log.Assert(hasAnyKind(c.Type), diag.SeverityError,
			"contributor type must include Person or Organization") {
			return nil
		}
	} else {
		c.Type = []string{"Person"}
	}

	if personOnly && !log.Assert(c.IsPerson(), diag.SeverityError,
		"this role is restricted to persons") {
		return nil
	}

	if id, ok := obj["id"].(string); ok && id != "" {
		c.ID = id
	}

	if rawURL, ok := obj["url"].(string); ok && rawURL != "" {
		resolved, err := utils.Absolutize(rawURL, bc.base)
		if err != nil {
			log.Warnf("contributor URL %q cannot be resolved: %v", rawURL, err)
		} else {
			// A bad URL is recorded but does not invalidate the
			// contributor itself.
			if utils.CheckURLWith(log, resolved) {
				c.URL = resolved
			}
		}
	}

	c.Extra = copyExtra(obj, contributorKnownKeys)

	return c
}

func hasAnyKind(types []string) bool {
	for _, t := range types {
		if t == "Person" || t == "Organization" {
			return true
		}
	}
	return false
}

// contributorArray maps a scalar-or-array input over buildContributor,
// discarding invalid entries. Returns nil when nothing survives.
func contributorArray(log *diag.Log, raw any, bc *buildContext, personOnly bool) []Contributor {
	var out []Contributor
	for _, e := range asArray(raw) {
		if c := buildContributor(log, e, bc, personOnly); c != nil {
			out = append(out, *c)
		}
	}
	return out
}
