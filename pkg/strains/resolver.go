// Package strains resolves strain names to lineage classifications.
// The matching engine only depends on the Resolver interface; durable or
// remote lineage stores plug in behind it.
package strains

import (
	"context"
	"sort"
	"strings"
)

// Lineage classifications.
const (
	LineageSativa = "SATIVA"
	LineageIndica = "INDICA"
	LineageHybrid = "HYBRID"
	LineageCBD    = "CBD"
	LineageMixed  = "MIXED"
)

// Resolver looks up the lineage for a strain name. The boolean reports
// whether the strain was known; callers fall back to LineageMixed when not.
type Resolver interface {
	Resolve(ctx context.Context, strain string) (string, bool)
}

// StaticResolver is an in-memory Resolver backed by a fixed lineage table.
// Lookup is exact first, then by longest strain name contained in the
// query, so product names like "Blue Dream Shake" still resolve.
type StaticResolver struct {
	lineages map[string]string

	// sortedStrains orders the containment scan longest-first so the most
	// specific strain wins deterministically.
	sortedStrains []string
}

// NewStaticResolver creates a resolver over the given strain → lineage
// table. Keys are matched case-insensitively. A nil table yields a resolver
// seeded with a small set of well-known strains.
func NewStaticResolver(lineages map[string]string) *StaticResolver {
	if lineages == nil {
		lineages = defaultLineages()
	}
	normalized := make(map[string]string, len(lineages))
	for strain, lineage := range lineages {
		normalized[strings.ToLower(strings.TrimSpace(strain))] = strings.ToUpper(strings.TrimSpace(lineage))
	}

	sorted := make([]string, 0, len(normalized))
	for strain := range normalized {
		sorted = append(sorted, strain)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	return &StaticResolver{lineages: normalized, sortedStrains: sorted}
}

// Resolve implements Resolver.
func (r *StaticResolver) Resolve(_ context.Context, strain string) (string, bool) {
	query := strings.ToLower(strings.TrimSpace(strain))
	if query == "" {
		return "", false
	}

	if lineage, ok := r.lineages[query]; ok {
		return lineage, true
	}

	for _, known := range r.sortedStrains {
		if strings.Contains(query, known) {
			return r.lineages[known], true
		}
	}
	return "", false
}

// Len returns the number of known strains.
func (r *StaticResolver) Len() int {
	return len(r.lineages)
}

// defaultLineages seeds the resolver with widely known strains.
func defaultLineages() map[string]string {
	return map[string]string{
		"blue dream":           LineageHybrid,
		"og kush":              LineageHybrid,
		"sour diesel":          LineageSativa,
		"green crack":          LineageSativa,
		"durban poison":        LineageSativa,
		"jack herer":           LineageSativa,
		"maui wowie":           LineageSativa,
		"granddaddy purple":    LineageIndica,
		"northern lights":      LineageIndica,
		"bubba kush":           LineageIndica,
		"purple punch":         LineageIndica,
		"hindu kush":           LineageIndica,
		"girl scout cookies":   LineageHybrid,
		"gsc":                  LineageHybrid,
		"gorilla glue":         LineageHybrid,
		"gg4":                  LineageHybrid,
		"wedding cake":         LineageHybrid,
		"gelato":               LineageHybrid,
		"runtz":                LineageHybrid,
		"pineapple express":    LineageHybrid,
		"white widow":          LineageHybrid,
		"trainwreck":           LineageHybrid,
		"charlotte's web":      LineageCBD,
		"acdc":                 LineageCBD,
		"harlequin":            LineageCBD,
		"ringo's gift":         LineageCBD,
		"sour tsunami":         LineageCBD,
	}
}
