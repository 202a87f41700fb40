package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
)

func TestValidNormalPlayTime(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"1234", true},
		{"1234.5", true},
		{"0.75", true},
		{"1:02:45", true},
		{"12:34:56.789", true},
		{"npt:1:02:45", true},
		{"", false},
		{"PT3H", false},
		{"1:2:45", false},
		{"1:62:45", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidNormalPlayTime(tt.value))
		})
	}
}

func TestBuildResource_FromBareString(t *testing.T) {
	log := diag.New()

	r := buildResource(log, "doc.html", testBuildContext(log))

	require.NotNil(t, r)
	assert.Equal(t, "https://example.org/doc.html", r.URL)
	assert.True(t, log.Empty())
}

func TestBuildResource_MissingURLDropped(t *testing.T) {
	log := diag.New()

	r := buildResource(log, map[string]any{"encodingFormat": "text/html"}, testBuildContext(log))

	assert.Nil(t, r)
	assert.Len(t, log.Errors(), 1)
}

func TestBuildResource_SelfReferenceRejectedForSeparateFile(t *testing.T) {
	log := diag.New()
	bc := testBuildContext(log)
	bc.separateFile = true

	r := buildResource(log, map[string]any{"url": "manifest.json"}, bc)

	assert.Nil(t, r)
	assert.Len(t, log.Errors(), 1)
}

func TestBuildResource_SelfReferenceKeptForEmbeddedManifest(t *testing.T) {
	log := diag.New()
	bc := testBuildContext(log)
	bc.separateFile = false

	r := buildResource(log, map[string]any{"url": "manifest.json"}, bc)

	require.NotNil(t, r)
	assert.Equal(t, "https://example.org/manifest.json", r.URL)
}

func TestBuildResource_FullObject(t *testing.T) {
	log := diag.New()

	r := buildResource(log, map[string]any{
		"url":            "audio/part1.mp3",
		"encodingFormat": "audio/mpeg",
		"name":           []any{map[string]any{"value": "Part 1", "language": "en"}},
		"description":    map[string]any{"value": "Opening chapter"},
		"rel":            []any{"alternate"},
		"duration":       "1:02:45",
	}, testBuildContext(log))

	require.NotNil(t, r)
	assert.Equal(t, "https://example.org/audio/part1.mp3", r.URL)
	assert.Equal(t, "audio/mpeg", r.EncodingFormat)
	require.Len(t, r.Name, 1)
	assert.Equal(t, "Part 1", r.Name[0].Value)
	require.NotNil(t, r.Description)
	assert.Equal(t, "Opening chapter", r.Description.Value)
	assert.Equal(t, []string{"alternate"}, r.Rel)
	assert.Equal(t, "1:02:45", r.Duration)
}

func TestBuildResource_BadDurationWarnsButResourceKept(t *testing.T) {
	log := diag.New()

	r := buildResource(log, map[string]any{
		"url":      "track.mp3",
		"duration": "three hours",
	}, testBuildContext(log))

	require.NotNil(t, r)
	assert.Empty(t, r.Duration)
	assert.Len(t, log.Warnings(), 1)
	assert.Empty(t, log.Errors())
}

func TestBuildResource_ExtraFieldsPassThrough(t *testing.T) {
	log := diag.New()

	r := buildResource(log, map[string]any{
		"url":        "toc.html",
		"integrity":  "sha384-deadbeef",
		"alternates": []any{"toc.xhtml"},
	}, testBuildContext(log))

	require.NotNil(t, r)
	assert.Equal(t, "sha384-deadbeef", r.Extra["integrity"])
	assert.NotContains(t, r.Extra, "url")
}

func TestResourceArray_DiscardsInvalidEntries(t *testing.T) {
	log := diag.New()

	out := resourceArray(log, []any{
		"ok.html",
		map[string]any{"rel": []any{"cover"}}, // no url
	}, testBuildContext(log))

	require.Len(t, out, 1)
	assert.Equal(t, "https://example.org/ok.html", out[0].URL)
}

func TestResourceArray_AllInvalidYieldsNoValue(t *testing.T) {
	log := diag.New()

	out := resourceArray(log, []any{map[string]any{}}, testBuildContext(log))

	assert.Nil(t, out)
}

func TestHasRel(t *testing.T) {
	r := LinkedResource{Rel: []string{"cover", "contents"}}

	assert.True(t, r.HasRel("cover"))
	assert.False(t, r.HasRel("privacy-policy"))
}
