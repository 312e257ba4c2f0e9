package match

import (
	"github.com/labelforge/tagmatch/internal/normalize"
	"github.com/labelforge/tagmatch/pkg/manifest"
)

// VendorExtractor derives normalized vendor tokens from heterogeneous
// name, vendor, and brand fields. The priority order is explicit vendor,
// explicit brand, the "<name> by <vendor>" pattern, then the
// "<name> (<vendor>)" pattern. An empty token means the vendor is unknown
// and disables vendor-based filtering for that item.
type VendorExtractor struct{}

// FromItem derives the vendor token for a manifest item.
func (VendorExtractor) FromItem(it *manifest.Item) string {
	return normalize.Vendor(it.ProductName, it.Vendor, it.Brand)
}

// FromFields derives the vendor token from raw fields.
func (VendorExtractor) FromFields(name, vendor, brand string) string {
	return normalize.Vendor(name, vendor, brand)
}
