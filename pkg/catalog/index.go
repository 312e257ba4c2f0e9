package catalog

import (
	"sort"
	"strings"

	"github.com/labelforge/tagmatch/internal/normalize"
)

// Index holds the read-only lookup structures built over one catalog
// version: exact normalized names, vendor groups, key terms, and
// normalized names for substring probes.
//
// An Index never mutates after Build. Catalog changes require a wholesale
// rebuild under the new version; there is no incremental update.
type Index struct {
	version         string
	exactNames      map[string]*Record
	vendorGroups    map[string][]*Record
	keyTerms        map[string][]*Record
	normalizedNames map[string][]*Record

	// sortedNames fixes the walk order of the substring probe so
	// truncated results are deterministic across runs.
	sortedNames []string
	size        int
}

// Build constructs an Index over the catalog's current rows. Build is O(n)
// in the catalog size.
//
// Duplicate normalized names resolve last-write-wins in row order for the
// exact-name map: the later row shadows the earlier one. This tracks the
// catalog's load order and is an accepted tradeoff; do not rely on it for
// "most recent wins" semantics.
func Build(c *Catalog) *Index {
	rows := c.Records()

	idx := &Index{
		version:         c.Version(),
		exactNames:      make(map[string]*Record, len(rows)),
		vendorGroups:    make(map[string][]*Record),
		keyTerms:        make(map[string][]*Record),
		normalizedNames: make(map[string][]*Record, len(rows)),
		size:            len(rows),
	}

	for i := range rows {
		rec := &rows[i]
		rec.NormalizedName = normalize.Name(rec.Name)
		rec.NameTokens = normalize.TokenSet(rec.Name)

		terms := normalize.KeyTerms(rec.Name)
		rec.KeyTerms = make(map[string]struct{}, len(terms))
		for _, t := range terms {
			rec.KeyTerms[t] = struct{}{}
			idx.keyTerms[t] = append(idx.keyTerms[t], rec)
		}

		if rec.NormalizedName != "" {
			idx.exactNames[rec.NormalizedName] = rec
			idx.normalizedNames[rec.NormalizedName] = append(idx.normalizedNames[rec.NormalizedName], rec)
		}

		rec.VendorToken = normalize.Vendor(rec.Name, rec.Vendor, rec.Brand)
		if rec.VendorToken != "" {
			idx.vendorGroups[rec.VendorToken] = append(idx.vendorGroups[rec.VendorToken], rec)
		}
	}

	idx.sortedNames = make([]string, 0, len(idx.normalizedNames))
	for name := range idx.normalizedNames {
		idx.sortedNames = append(idx.sortedNames, name)
	}
	sort.Strings(idx.sortedNames)

	return idx
}

// Version returns the catalog version this index was built from.
func (idx *Index) Version() string {
	return idx.version
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return idx.size
}

// Empty reports whether the index has no records to offer.
func (idx *Index) Empty() bool {
	return idx == nil || idx.size == 0
}

// ExactName looks up a record by its normalized name.
func (idx *Index) ExactName(normalized string) (*Record, bool) {
	rec, ok := idx.exactNames[normalized]
	return rec, ok
}

// HasVendor reports whether any record is grouped under the vendor token.
func (idx *Index) HasVendor(vendor string) bool {
	_, ok := idx.vendorGroups[vendor]
	return ok
}

// VendorGroup returns the records grouped under the vendor token, in
// catalog row order.
func (idx *Index) VendorGroup(vendor string) []*Record {
	return idx.vendorGroups[vendor]
}

// ByKeyTerm returns the records indexed under the given key term.
func (idx *Index) ByKeyTerm(term string) []*Record {
	return idx.keyTerms[term]
}

// NormalizedNameContains returns up to limit records whose normalized name
// contains the given substring. This walks the normalized-name index and is
// only intended for use behind the candidate selector's small-result guard.
func (idx *Index) NormalizedNameContains(substr string, limit int) []*Record {
	if substr == "" || limit <= 0 {
		return nil
	}
	var out []*Record
	for _, name := range idx.sortedNames {
		if !strings.Contains(name, substr) {
			continue
		}
		for _, rec := range idx.normalizedNames[name] {
			out = append(out, rec)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// Vendors returns the number of distinct vendor groups.
func (idx *Index) Vendors() int {
	return len(idx.vendorGroups)
}

// Terms returns the number of distinct key terms.
func (idx *Index) Terms() int {
	return len(idx.keyTerms)
}
