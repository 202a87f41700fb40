package manifest

// Relation values with derived lookups on the model.
const (
	RelAccessibilityReport = "accessibility-report"
	RelPrivacyPolicy       = "privacy-policy"
	RelContents            = "contents"
	RelCover               = "cover"
)

// derivedLinks memoizes the post-construction lookups. The model is
// immutable once built and queried from a single goroutine, so a computed
// flag per lookup is all the invalidation logic needed.
type derivedLinks struct {
	reportDone  bool
	report      *LinkedResource
	privacyDone bool
	privacy     *LinkedResource
	tocDone     bool
	toc         *LinkedResource
	coversDone  bool
	covers      []LinkedResource
}

// collections returns the link collections in derived-lookup search order.
func (p *Publication) collections() [][]LinkedResource {
	return [][]LinkedResource{p.ReadingOrder, p.Resources, p.Links}
}

func (p *Publication) firstWithRel(rel string) *LinkedResource {
	for _, coll := range p.collections() {
		for i := range coll {
			if coll[i].HasRel(rel) {
				return &coll[i]
			}
		}
	}
	return nil
}

// AccessibilityReport returns the first resource tagged
// rel="accessibility-report", or nil.
func (p *Publication) AccessibilityReport() *LinkedResource {
	if !p.derived.reportDone {
		p.derived.report = p.firstWithRel(RelAccessibilityReport)
		p.derived.reportDone = true
	}
	return p.derived.report
}

// PrivacyPolicy returns the first resource tagged rel="privacy-policy", or
// nil.
func (p *Publication) PrivacyPolicy() *LinkedResource {
	if !p.derived.privacyDone {
		p.derived.privacy = p.firstWithRel(RelPrivacyPolicy)
		p.derived.privacyDone = true
	}
	return p.derived.privacy
}

// TableOfContents returns the first resource tagged rel="contents", or nil.
func (p *Publication) TableOfContents() *LinkedResource {
	if !p.derived.tocDone {
		p.derived.toc = p.firstWithRel(RelContents)
		p.derived.tocDone = true
	}
	return p.derived.toc
}

// Covers collects every resource tagged rel="cover" across the three
// collections, in search order. Returns nil when there are none.
func (p *Publication) Covers() []LinkedResource {
	if !p.derived.coversDone {
		for _, coll := range p.collections() {
			for i := range coll {
				if coll[i].HasRel(RelCover) {
					p.derived.covers = append(p.derived.covers, coll[i])
				}
			}
		}
		p.derived.coversDone = true
	}
	return p.derived.covers
}
