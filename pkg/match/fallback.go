package match

import (
	"context"
	"strings"

	"github.com/labelforge/tagmatch/pkg/manifest"
	"github.com/labelforge/tagmatch/pkg/strains"
)

// fallbackName labels items that arrived without a usable product name.
const fallbackName = "Unknown Product"

// FallbackRecord is a synthesized, lower-fidelity stand-in built when no
// confident catalog match exists. It guarantees every manifest item is
// representable downstream.
type FallbackRecord struct {
	Name        string
	Vendor      string
	Brand       string
	ProductType string
	Lineage     string
	Weight      string
	Price       string
}

// TagBuilder synthesizes fallback records from whatever manifest fields
// exist, resolving lineage through the strain-lookup collaborator.
type TagBuilder struct {
	resolver  strains.Resolver
	extractor VendorExtractor
}

// NewTagBuilder creates a TagBuilder. A nil resolver disables strain lookup
// and every fallback defaults to MIXED lineage.
func NewTagBuilder(resolver strains.Resolver) *TagBuilder {
	return &TagBuilder{resolver: resolver}
}

// Build synthesizes a fallback record for the item.
func (b *TagBuilder) Build(ctx context.Context, it *manifest.Item) *FallbackRecord {
	name := strings.TrimSpace(it.ProductName)
	if name == "" {
		name = fallbackName
	}

	weight := strings.TrimSpace(it.Weight)
	if weight != "" && it.Unit != "" {
		weight += it.Unit
	}

	return &FallbackRecord{
		Name:    name,
		Vendor:  b.extractor.FromItem(it),
		Brand:   strings.TrimSpace(it.Brand),
		Lineage: b.lineage(ctx, it),
		Weight:  weight,
		Price:   strings.TrimSpace(it.Price),
	}
}

// BuildMinimal synthesizes a fallback from the item's own fields only,
// without consulting the strain resolver. The orchestrator uses it to
// recover from a per-item panic, where the resolver itself may be the
// component that panicked.
func (b *TagBuilder) BuildMinimal(it *manifest.Item) *FallbackRecord {
	name := strings.TrimSpace(it.ProductName)
	if name == "" {
		name = fallbackName
	}
	return &FallbackRecord{
		Name:    name,
		Vendor:  b.extractor.FromItem(it),
		Brand:   strings.TrimSpace(it.Brand),
		Lineage: strains.LineageMixed,
	}
}

// lineage resolves the item's lineage, preferring the strain field, then
// the product name, then an explicit hint carried by the manifest.
// LineageMixed is the final fallback.
func (b *TagBuilder) lineage(ctx context.Context, it *manifest.Item) string {
	if b.resolver != nil {
		if it.Strain != "" {
			if lineage, ok := b.resolver.Resolve(ctx, it.Strain); ok {
				return lineage
			}
		}
		if lineage, ok := b.resolver.Resolve(ctx, it.ProductName); ok {
			return lineage
		}
	}

	if hint := strings.ToUpper(strings.TrimSpace(it.LineageHint)); hint != "" {
		return hint
	}
	return strains.LineageMixed
}
