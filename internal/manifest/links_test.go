package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedLinks_AccessibilityReportFoundInLinks(t *testing.T) {
	pub, _ := convert(t, map[string]any{
		"readingOrder": "doc.html",
		"links": []any{map[string]any{
			"url": "report.html",
			"rel": "accessibility-report",
		}},
	}, "https://x.test/m.json", "", true)

	report := pub.AccessibilityReport()
	require.NotNil(t, report)
	assert.Equal(t, "https://x.test/report.html", report.URL)
}

func TestDerivedLinks_PriorityOrder(t *testing.T) {
	pub, _ := convert(t, map[string]any{
		"readingOrder": []any{map[string]any{
			"url": "inline-policy.html",
			"rel": "privacy-policy",
		}},
		"links": []any{map[string]any{
			"url": "site-policy.html",
			"rel": "privacy-policy",
		}},
	}, "https://x.test/m.json", "", true)

	policy := pub.PrivacyPolicy()
	require.NotNil(t, policy)
	assert.Equal(t, "https://x.test/inline-policy.html", policy.URL)
}

func TestDerivedLinks_TableOfContents(t *testing.T) {
	pub, _ := convert(t, map[string]any{
		"resources": []any{map[string]any{
			"url": "toc.html",
			"rel": "contents",
		}},
	}, "https://x.test/m.json", "", true)

	toc := pub.TableOfContents()
	require.NotNil(t, toc)
	assert.Equal(t, "https://x.test/toc.html", toc.URL)
}

func TestDerivedLinks_AbsentYieldsNil(t *testing.T) {
	pub, _ := convert(t, map[string]any{
		"readingOrder": "doc.html",
	}, "https://x.test/m.json", "", true)

	assert.Nil(t, pub.AccessibilityReport())
	assert.Nil(t, pub.PrivacyPolicy())
	assert.Nil(t, pub.TableOfContents())
	assert.Nil(t, pub.Covers())
}

func TestDerivedLinks_CoversCollectsAllMatches(t *testing.T) {
	pub, _ := convert(t, map[string]any{
		"readingOrder": []any{map[string]any{
			"url": "inline-cover.jpg",
			"rel": "cover",
		}},
		"resources": []any{
			map[string]any{"url": "cover.jpg", "rel": "cover"},
			map[string]any{"url": "toc.html", "rel": "contents"},
		},
		"links": []any{map[string]any{
			"url": "alt-cover.jpg",
			"rel": "cover",
		}},
	}, "https://x.test/m.json", "", true)

	covers := pub.Covers()
	require.Len(t, covers, 3)
	assert.Equal(t, "https://x.test/inline-cover.jpg", covers[0].URL)
	assert.Equal(t, "https://x.test/cover.jpg", covers[1].URL)
	assert.Equal(t, "https://x.test/alt-cover.jpg", covers[2].URL)
}

func TestDerivedLinks_Memoized(t *testing.T) {
	pub, _ := convert(t, map[string]any{
		"links": []any{map[string]any{
			"url": "report.html",
			"rel": "accessibility-report",
		}},
	}, "https://x.test/m.json", "", true)

	first := pub.AccessibilityReport()
	second := pub.AccessibilityReport()
	assert.Same(t, first, second)
}
