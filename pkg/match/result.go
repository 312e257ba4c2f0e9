package match

import (
	"github.com/labelforge/tagmatch/pkg/catalog"
	"github.com/labelforge/tagmatch/pkg/manifest"
)

// Decision indicates whether an item matched a catalog record or fell back
// to a synthesized one.
type Decision string

// Decisions.
const (
	DecisionMatched  Decision = "MATCHED"
	DecisionFallback Decision = "FALLBACK"
)

// Result is the outcome for exactly one manifest item. Exactly one of
// Record and Fallback is set, selected by Decision; consumers should switch
// on Decision rather than probing for nil fields.
type Result struct {
	// Item is the original manifest item.
	Item manifest.Item

	// Decision tags which variant this result carries.
	Decision Decision

	// Score is the confidence of the selected candidate, within [0,1].
	// Fallback results carry the best rejected score, or 0 when no
	// candidate existed.
	Score float64

	// Record is the matched catalog record when Decision is MATCHED.
	Record *catalog.Record

	// Fallback is the synthesized record when Decision is FALLBACK.
	Fallback *FallbackRecord
}

// Matched returns the catalog record and true when the item matched.
func (r *Result) Matched() (*catalog.Record, bool) {
	if r.Decision == DecisionMatched {
		return r.Record, true
	}
	return nil, false
}

// DisplayName returns the name to present downstream.
func (r *Result) DisplayName() string {
	if rec, ok := r.Matched(); ok {
		return rec.Name
	}
	return r.Fallback.Name
}

// DisplayVendor returns the vendor to present downstream.
func (r *Result) DisplayVendor() string {
	if rec, ok := r.Matched(); ok {
		return rec.Vendor
	}
	return r.Fallback.Vendor
}

// DisplayBrand returns the brand to present downstream.
func (r *Result) DisplayBrand() string {
	if rec, ok := r.Matched(); ok {
		return rec.Brand
	}
	return r.Fallback.Brand
}

// DisplayProductType returns the product type to present downstream.
func (r *Result) DisplayProductType() string {
	if rec, ok := r.Matched(); ok {
		return rec.ProductType
	}
	return r.Fallback.ProductType
}

// DisplayLineage returns the lineage to present downstream.
func (r *Result) DisplayLineage() string {
	if rec, ok := r.Matched(); ok {
		return rec.Lineage
	}
	return r.Fallback.Lineage
}
