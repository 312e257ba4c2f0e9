package match_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/tagmatch/pkg/catalog"
	"github.com/labelforge/tagmatch/pkg/match"
)

func TestSelectExactNameProbe(t *testing.T) {
	idx := indexFor(t,
		catalog.Record{Name: "Blue Dream 1g", Vendor: "Acme"},
		catalog.Record{Name: "Blue Dream 2g", Vendor: "Acme"},
	)
	cfg := match.DefaultConfig()
	selector := match.NewSelector(idx, &cfg)

	// An exact normalized name returns that single record immediately,
	// even when the item names a different vendor.
	candidates := selector.Select(itemContext("Blue Dream 1g", "OtherCo", ""))
	require.Len(t, candidates, 1)
	assert.Equal(t, "Blue Dream 1g", candidates[0].Name)
}

func TestSelectVendorIsolation(t *testing.T) {
	idx := indexFor(t,
		catalog.Record{Name: "Blue Dream Special 1g", Vendor: "Acme"},
		catalog.Record{Name: "Blue Dream Special 2g", Vendor: "Bravo"},
	)
	cfg := match.DefaultConfig()
	selector := match.NewSelector(idx, &cfg)

	t.Run("known vendor scopes to its group", func(t *testing.T) {
		candidates := selector.Select(itemContext("Blue Dream Special", "Acme", ""))
		require.Len(t, candidates, 1)
		assert.Equal(t, "acme", candidates[0].VendorToken)
	})

	t.Run("known but absent vendor yields nothing", func(t *testing.T) {
		candidates := selector.Select(itemContext("Blue Dream Special", "Charlie", ""))
		assert.Empty(t, candidates)
	})

	t.Run("unknown vendor considers all vendors", func(t *testing.T) {
		candidates := selector.Select(itemContext("Blue Dream Special", "", ""))
		assert.Len(t, candidates, 2)
	})
}

func TestSelectKeyTermProbe(t *testing.T) {
	idx := indexFor(t,
		catalog.Record{Name: "Sour Diesel Cart", Vendor: "Acme"},
		catalog.Record{Name: "Sour Diesel Flower", Vendor: "Bravo"},
		catalog.Record{Name: "Gelato Gummies", Vendor: "Charlie"},
	)
	cfg := match.DefaultConfig()
	selector := match.NewSelector(idx, &cfg)

	candidates := selector.Select(itemContext("Sour Diesel Premium", "", ""))
	require.Len(t, candidates, 2)
	names := []string{candidates[0].Name, candidates[1].Name}
	assert.Contains(t, names, "Sour Diesel Cart")
	assert.Contains(t, names, "Sour Diesel Flower")
}

func TestSelectCandidateCap(t *testing.T) {
	rows := make([]catalog.Record, 0, 60)
	for i := 0; i < 60; i++ {
		rows = append(rows, catalog.Record{
			Name:   fmt.Sprintf("Kush Blend %02d", i),
			Vendor: "Acme",
		})
	}
	idx := indexFor(t, rows...)

	cfg := match.DefaultConfig()
	selector := match.NewSelector(idx, &cfg)

	t.Run("unknown vendor capped", func(t *testing.T) {
		candidates := selector.Select(itemContext("Kush Blend", "", ""))
		assert.Len(t, candidates, match.DefaultCandidateCap)
	})

	t.Run("vendor group capped", func(t *testing.T) {
		candidates := selector.Select(itemContext("Kush Blend", "Acme", ""))
		assert.Len(t, candidates, match.DefaultCandidateCap)
	})
}

func TestSelectSubstringProbe(t *testing.T) {
	idx := indexFor(t,
		catalog.Record{Name: "Big Cat OG 1g", Vendor: "Acme"},
		catalog.Record{Name: "Big Cat Vape", Vendor: "Bravo"},
	)
	cfg := match.DefaultConfig()
	selector := match.NewSelector(idx, &cfg)

	// "big" and "cat" are below the key-term length floor, so only the
	// normalized-name substring probe can recall these records.
	candidates := selector.Select(itemContext("Big Cat", "", ""))
	require.Len(t, candidates, 2)
	assert.Equal(t, "Big Cat OG 1g", candidates[0].Name)
	assert.Equal(t, "Big Cat Vape", candidates[1].Name)
}

func TestSelectEmptyIndex(t *testing.T) {
	idx := catalog.Build(catalog.New())
	cfg := match.DefaultConfig()
	selector := match.NewSelector(idx, &cfg)

	assert.Empty(t, selector.Select(itemContext("Blue Dream 1g", "", "")))
}
