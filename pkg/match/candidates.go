package match

import (
	"github.com/labelforge/tagmatch/internal/normalize"
	"github.com/labelforge/tagmatch/pkg/catalog"
	"github.com/labelforge/tagmatch/pkg/manifest"
)

// ItemContext is the per-item working state: the normalized name, token
// set, key terms, and vendor token derived once and shared by candidate
// selection and scoring. Instances are transient and released periodically
// by the orchestrator on large manifests.
type ItemContext struct {
	item           *manifest.Item
	normalizedName string
	tokens         map[string]struct{}
	keyTerms       []string
	vendor         string
}

// NewItemContext derives the matching context for one manifest item.
func NewItemContext(it *manifest.Item, extractor VendorExtractor) *ItemContext {
	terms := normalize.KeyTerms(it.ProductName)
	if it.Strain != "" {
		terms = append(terms, normalize.KeyTerms(it.Strain)...)
	}
	return &ItemContext{
		item:           it,
		normalizedName: normalize.Name(it.ProductName),
		tokens:         normalize.TokenSet(it.ProductName),
		keyTerms:       terms,
		vendor:         extractor.FromItem(it),
	}
}

// Selector produces a bounded candidate list for a manifest item from the
// catalog index. A Selector reuses scratch buffers between items and is not
// safe for concurrent use; each matching run owns its own.
type Selector struct {
	index *catalog.Index
	cfg   *Config

	// scratch and seen are per-item working memory, reused across items
	// and released periodically by the orchestrator.
	scratch []*catalog.Record
	seen    map[*catalog.Record]struct{}
}

// NewSelector creates a Selector over the given index.
func NewSelector(index *catalog.Index, cfg *Config) *Selector {
	return &Selector{index: index, cfg: cfg}
}

// reclaim releases the reused working memory. The next Select reallocates,
// which bounds peak memory across very large manifests.
func (s *Selector) reclaim() {
	s.scratch = nil
	s.seen = nil
}

// Select gathers candidates for the item, capped at the configured limit.
//
// The probes run in order:
//  1. Exact-name probe. A hit returns that single record immediately and is
//     the only path that bypasses vendor filtering, since exact-name
//     equality is treated as authoritative.
//  2. Vendor-scoped probe. With a known vendor present in the index the
//     vendor group seeds the candidates, records hitting a key term first;
//     a known vendor absent from the index yields no candidates at all
//     (strict isolation, never cross-vendor).
//  3. Key-term probe, when the vendor is unknown.
//  4. Normalized-name substring probe, only while the vendor is unknown and
//     fewer than the probe limit of candidates have been gathered.
func (s *Selector) Select(ic *ItemContext) []*catalog.Record {
	if s.index.Empty() {
		return nil
	}

	if ic.normalizedName != "" {
		if rec, ok := s.index.ExactName(ic.normalizedName); ok {
			return []*catalog.Record{rec}
		}
	}

	if ic.vendor != "" {
		if !s.index.HasVendor(ic.vendor) {
			return nil
		}
		return s.vendorScoped(ic)
	}

	candidates := s.scratch[:0]
	if s.seen == nil {
		s.seen = make(map[*catalog.Record]struct{}, s.cfg.CandidateCap)
	} else {
		clear(s.seen)
	}
	seen := s.seen

	for _, term := range ic.keyTerms {
		for _, rec := range s.index.ByKeyTerm(term) {
			if len(candidates) >= s.cfg.CandidateCap {
				s.scratch = candidates
				return candidates
			}
			if _, dup := seen[rec]; dup {
				continue
			}
			seen[rec] = struct{}{}
			candidates = append(candidates, rec)
		}
	}

	// Substring probe, bounded to keep cost down on large catalogs.
	if len(candidates) < s.cfg.SubstringProbeLimit && ic.normalizedName != "" {
		limit := s.cfg.CandidateCap - len(candidates)
		for _, rec := range s.index.NormalizedNameContains(ic.normalizedName, limit) {
			if _, dup := seen[rec]; dup {
				continue
			}
			seen[rec] = struct{}{}
			candidates = append(candidates, rec)
		}
	}

	s.scratch = candidates
	return candidates
}

// vendorScoped returns candidates drawn exclusively from the item's vendor
// group. Key-term hits are moved to the front so the cap favors records
// sharing vocabulary with the item.
func (s *Selector) vendorScoped(ic *ItemContext) []*catalog.Record {
	group := s.index.VendorGroup(ic.vendor)

	termHits := make(map[*catalog.Record]struct{})
	for _, term := range ic.keyTerms {
		for _, rec := range s.index.ByKeyTerm(term) {
			termHits[rec] = struct{}{}
		}
	}

	candidates := make([]*catalog.Record, 0, min(len(group), s.cfg.CandidateCap))
	for _, rec := range group {
		if _, hit := termHits[rec]; hit {
			candidates = append(candidates, rec)
			if len(candidates) >= s.cfg.CandidateCap {
				return candidates
			}
		}
	}
	for _, rec := range group {
		if _, hit := termHits[rec]; hit {
			continue
		}
		candidates = append(candidates, rec)
		if len(candidates) >= s.cfg.CandidateCap {
			break
		}
	}
	return candidates
}
