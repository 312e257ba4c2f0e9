package manifest

import (
	"encoding/json"

	"github.com/labelforge/tagmatch/pkg/errors"
)

// envelopeKeys are the recognized top-level keys an item array may appear
// under, probed in order. A document that is itself an array needs no key.
var envelopeKeys = []string{
	"inventory_transfer_items",
	"transfers",
	"items",
	"data",
}

// Manifest is a decoded inventory transfer document.
type Manifest struct {
	// Source records where the manifest came from (URL, path, or "inline").
	Source string

	// Items are the line entries in document order.
	Items []Item
}

// Len returns the number of manifest items.
func (m *Manifest) Len() int {
	return len(m.Items)
}

// Parse decodes a manifest document. The item array may be the document
// root or sit under any recognized envelope key. The source string labels
// errors only.
func Parse(data []byte, source string) (*Manifest, error) {
	// Bare array at the document root.
	var items []Item
	if err := json.Unmarshal(data, &items); err == nil {
		return &Manifest{Source: source, Items: items}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.WrapRetrieval(source, errors.WrapParse("json", source, err))
	}

	for _, key := range envelopeKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errors.WrapRetrieval(source, errors.WrapParse("json", source, err))
		}
		return &Manifest{Source: source, Items: items}, nil
	}

	return nil, errors.NewRetrievalError(source, errors.New("no item array found under a recognized key"))
}
