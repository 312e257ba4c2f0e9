package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/labelforge/tagmatch/pkg/errors"
)

// catalogDocument is the on-disk YAML shape: either a bare list of records
// or a document with a top-level products key.
type catalogDocument struct {
	Products []Record `yaml:"products"`
}

// Load reads a catalog file, choosing the decoder from the extension.
// YAML (.yaml/.yml) and CSV (.csv) are supported.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f, path)
	case ".csv":
		return LoadCSV(f, path)
	default:
		return nil, errors.NewValidationError("path", path, "unsupported catalog format")
	}
}

// LoadYAML decodes a YAML catalog from r. The document may be a bare
// sequence of records or carry them under a "products" key. The name
// identifies the source in errors.
func LoadYAML(r io.Reader, name string) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}

	var doc catalogDocument
	docErr := yaml.Unmarshal(data, &doc)
	if docErr == nil && doc.Products != nil {
		return New(doc.Products...), nil
	}

	// Fall back to a bare sequence of records.
	var rows []Record
	if seqErr := yaml.Unmarshal(data, &rows); seqErr != nil {
		if docErr != nil {
			return nil, errors.WrapParse("yaml", name, docErr)
		}
		return nil, errors.WrapParse("yaml", name, seqErr)
	}
	return New(rows...), nil
}

// LoadCSV decodes a CSV catalog from r. The first row is a header; name,
// vendor, brand, product_type, and lineage columns map to typed fields and
// everything else lands in Raw.
func LoadCSV(r io.Reader, name string) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.WrapParse("csv", name, err)
	}
	for i, col := range header {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	cat := New()
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.NewParseError("csv", name, err.Error(), err)
		}

		var rec Record
		for i, value := range row {
			if i >= len(header) {
				break
			}
			value = strings.TrimSpace(value)
			switch header[i] {
			case "name", "product_name":
				rec.Name = value
			case "vendor":
				rec.Vendor = value
			case "brand":
				rec.Brand = value
			case "product_type", "type":
				rec.ProductType = value
			case "lineage":
				rec.Lineage = value
			default:
				if value != "" {
					if rec.Raw == nil {
						rec.Raw = make(map[string]string)
					}
					rec.Raw[header[i]] = value
				}
			}
		}
		if rec.Name == "" {
			continue
		}
		cat.Add(rec)
	}

	return cat, nil
}
