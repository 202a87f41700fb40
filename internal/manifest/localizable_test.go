package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/pubmanifest-go/internal/diag"
)

func TestNewLocalizableString_FromString(t *testing.T) {
	log := diag.New()

	ls, ok := newLocalizableString(log, "Moby Dick", "en")

	require.True(t, ok)
	assert.Equal(t, "Moby Dick", ls.Value)
	assert.Equal(t, "en", ls.Language)
	assert.True(t, log.Empty())
}

func TestNewLocalizableString_FromObject(t *testing.T) {
	log := diag.New()

	ls, ok := newLocalizableString(log, map[string]any{
		"value":    "Les Diaboliques",
		"language": "fr",
	}, "en")

	require.True(t, ok)
	assert.Equal(t, "Les Diaboliques", ls.Value)
	assert.Equal(t, "fr", ls.Language)
}

func TestNewLocalizableString_ObjectWithoutLanguageUsesDefault(t *testing.T) {
	log := diag.New()

	ls, ok := newLocalizableString(log, map[string]any{"value": "Hi"}, "en")

	require.True(t, ok)
	assert.Equal(t, "en", ls.Language)
}

func TestNewLocalizableString_NoValueIsDropped(t *testing.T) {
	log := diag.New()

	_, ok := newLocalizableString(log, map[string]any{"language": "en"}, "")

	assert.False(t, ok)
	assert.Len(t, log.Errors(), 1)
}

func TestNewLocalizableString_BadLanguageClearedNotDropped(t *testing.T) {
	log := diag.New()

	ls, ok := newLocalizableString(log, map[string]any{
		"value":    "Hello",
		"language": "definitely not a tag",
	}, "")

	require.True(t, ok)
	assert.Equal(t, "Hello", ls.Value)
	assert.Empty(t, ls.Language)
	assert.Len(t, log.Warnings(), 1)
	assert.Empty(t, log.Errors())
}

func TestLocalizableArray_FiltersInvalid(t *testing.T) {
	log := diag.New()

	out := localizableArray(log, []any{
		"keep",
		map[string]any{"language": "en"}, // no value, dropped
		map[string]any{"value": "also kept"},
	}, "en")

	require.Len(t, out, 2)
	assert.Equal(t, "keep", out[0].Value)
	assert.Equal(t, "also kept", out[1].Value)
}

func TestLocalizableArray_AllInvalidYieldsNoValue(t *testing.T) {
	log := diag.New()

	out := localizableArray(log, []any{
		map[string]any{"language": "en"},
		map[string]any{},
	}, "")

	assert.Nil(t, out)
}

func TestLocalizableArray_ScalarInput(t *testing.T) {
	log := diag.New()

	out := localizableArray(log, "single", "fr")

	require.Len(t, out, 1)
	assert.Equal(t, LocalizableString{Value: "single", Language: "fr"}, out[0])
}

func TestLocalizableArray_NilInput(t *testing.T) {
	assert.Nil(t, localizableArray(diag.New(), nil, "en"))
}
