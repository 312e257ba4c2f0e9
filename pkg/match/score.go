package match

import (
	"github.com/labelforge/tagmatch/pkg/catalog"
)

// Scorer computes the confidence score for an (item, candidate) pair.
// Scores are always within [0,1]; 1.0 is reserved for exact normalized-name
// matches and everything else is clamped to the configured ceiling.
type Scorer struct {
	cfg *Config
}

// NewScorer creates a Scorer with the given configuration.
func NewScorer(cfg *Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score evaluates one candidate against the item context.
//
// The rules, in order:
//   - Exact normalized-name equality forces 1.0, regardless of vendor.
//   - Known, differing vendor tokens return the mismatch score
//     (near-disqualifying but kept sortable).
//   - Otherwise the score is the base, plus a capped per-overlapping-term
//     increment, plus a Jaccard token-overlap component, plus the vendor
//     bonus when both tokens are known and equal. The sum is clamped
//     below 1.0.
func (s *Scorer) Score(ic *ItemContext, cand *catalog.Record) float64 {
	if ic.normalizedName != "" && ic.normalizedName == cand.NormalizedName {
		return 1.0
	}

	if ic.vendor != "" && cand.VendorToken != "" && ic.vendor != cand.VendorToken {
		return s.cfg.VendorMismatchScore
	}

	overlap := 0
	for _, term := range ic.keyTerms {
		if cand.HasKeyTerm(term) {
			overlap++
		}
	}

	jaccard := jaccard(ic.tokens, cand.NameTokens)

	capped := overlap
	if capped > s.cfg.KeyTermCap {
		capped = s.cfg.KeyTermCap
	}
	score := s.cfg.BaseScore + s.cfg.KeyTermWeight*float64(capped) + jaccard*s.cfg.KeyTermWeight

	if ic.vendor != "" && cand.VendorToken != "" && ic.vendor == cand.VendorToken {
		score += s.cfg.VendorBonus
	}

	if score > s.cfg.NonExactCeiling {
		score = s.cfg.NonExactCeiling
	}
	if score < 0 {
		score = 0
	}
	return score
}

// jaccard computes the token-overlap ratio between two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
