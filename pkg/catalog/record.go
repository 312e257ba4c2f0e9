// Package catalog holds the locally loaded product catalog, the read-only
// lookup indexes built over it, and the version-keyed index cache.
//
// A Catalog is an already-normalized tabular structure: ingestion from
// source files is a loader concern (see load.go), and field normalization
// beyond name/vendor folding is expected to have happened upstream.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
)

// Record is a single catalog product. Records are immutable once indexed
// and are exclusively owned by the Index that derived them.
type Record struct {
	// Name is the product name as loaded.
	Name string `yaml:"name" json:"name"`

	// Vendor is the normalized vendor token, empty when unknown.
	Vendor string `yaml:"vendor" json:"vendor"`

	// Brand is the product brand, empty when unknown.
	Brand string `yaml:"brand,omitempty" json:"brand,omitempty"`

	// ProductType classifies the product (flower, vape, edible, ...).
	ProductType string `yaml:"product_type,omitempty" json:"product_type,omitempty"`

	// Lineage is the strain lineage when the catalog carries one.
	Lineage string `yaml:"lineage,omitempty" json:"lineage,omitempty"`

	// NormalizedName is the lowercase/trimmed name, derived at index build.
	NormalizedName string `yaml:"-" json:"-"`

	// VendorToken is the normalized vendor token, derived at index build.
	VendorToken string `yaml:"-" json:"-"`

	// KeyTerms is the set of index terms derived from the name at build.
	KeyTerms map[string]struct{} `yaml:"-" json:"-"`

	// NameTokens is the full token set of the name, derived at index build
	// and used for token-overlap scoring.
	NameTokens map[string]struct{} `yaml:"-" json:"-"`

	// Raw carries source attributes not covered by the typed fields.
	Raw map[string]string `yaml:"raw,omitempty" json:"raw,omitempty"`
}

// HasKeyTerm reports whether the record was indexed under the given term.
func (r *Record) HasKeyTerm(term string) bool {
	_, ok := r.KeyTerms[term]
	return ok
}

// Catalog is the in-memory set of known products available for matching.
// It is safe for concurrent reads; mutation invalidates the cached version.
type Catalog struct {
	mu      sync.RWMutex
	records []Record
	version string
}

// New creates a catalog from the given rows.
func New(rows ...Record) *Catalog {
	c := &Catalog{records: make([]Record, 0, len(rows))}
	c.records = append(c.records, rows...)
	return c
}

// Add appends rows to the catalog and invalidates the cached version.
func (c *Catalog) Add(rows ...Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rows...)
	c.version = ""
}

// Records returns a copy of the catalog rows in load order.
func (c *Catalog) Records() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of catalog rows.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Version returns a content hash identifying this catalog state. Any change
// to the rows yields a new version, which drives index cache invalidation.
func (c *Catalog) Version() string {
	c.mu.RLock()
	if c.version != "" {
		v := c.version
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version == "" {
		c.version = hashRecords(c.records)
	}
	return c.version
}

// hashRecords computes a stable digest over the identifying record fields.
func hashRecords(records []Record) string {
	h := sha256.New()
	for _, r := range records {
		h.Write([]byte(r.Name))
		h.Write([]byte{0})
		h.Write([]byte(r.Vendor))
		h.Write([]byte{0})
		h.Write([]byte(r.Brand))
		h.Write([]byte{0})
		h.Write([]byte(r.ProductType))
		h.Write([]byte{0})
		h.Write([]byte(r.Lineage))
		h.Write([]byte{0})
		writeRaw(h, r.Raw)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// writeRaw writes raw attributes in sorted key order so the digest is
// independent of map iteration.
func writeRaw(h interface{ Write(p []byte) (int, error) }, raw map[string]string) {
	if len(raw) == 0 {
		return
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write([]byte(raw[k]))
		h.Write([]byte{';'})
	}
}
