// Package manifest parses externally supplied inventory manifests and
// retrieves them by URL, file path, or inline JSON.
package manifest

import (
	"encoding/json"
	"strings"
)

// Item is a single manifest line entry to be matched. Items are ephemeral:
// one per incoming array element, discarded after the run.
type Item struct {
	ProductName string `json:"product_name"`
	Vendor      string `json:"vendor,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Strain      string `json:"strain_name,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Price       string `json:"price,omitempty"`
	LineageHint string `json:"lineage,omitempty"`

	// Raw preserves the original JSON element for downstream consumers.
	Raw json.RawMessage `json:"-"`
}

// HasProductName reports whether the item carries a usable product name.
// Items without one cannot be matched and degrade to fallback.
func (it *Item) HasProductName() bool {
	return strings.TrimSpace(it.ProductName) != ""
}

// itemEnvelope tolerates the field aliases seen across manifest producers.
type itemEnvelope struct {
	ProductName  string          `json:"product_name"`
	Name         string          `json:"name"`
	Vendor       string          `json:"vendor"`
	Supplier     string          `json:"supplier"`
	Brand        string          `json:"brand"`
	StrainName   string          `json:"strain_name"`
	Strain       string          `json:"strain"`
	Weight       json.RawMessage `json:"weight"`
	Unit         string          `json:"unit"`
	Price        json.RawMessage `json:"price"`
	Lineage      string          `json:"lineage"`
	LineageHint  string          `json:"lineage_hint"`
}

// UnmarshalJSON decodes an item tolerantly: aliased field names are folded
// into the canonical fields and numeric weight/price values are accepted
// alongside strings.
func (it *Item) UnmarshalJSON(data []byte) error {
	var env itemEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	it.ProductName = firstNonEmpty(env.ProductName, env.Name)
	it.Vendor = firstNonEmpty(env.Vendor, env.Supplier)
	it.Brand = env.Brand
	it.Strain = firstNonEmpty(env.StrainName, env.Strain)
	it.Weight = rawScalar(env.Weight)
	it.Unit = env.Unit
	it.Price = rawScalar(env.Price)
	it.LineageHint = firstNonEmpty(env.Lineage, env.LineageHint)
	it.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// firstNonEmpty returns the first non-blank value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// rawScalar renders a JSON scalar (string or number) as its string form.
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
