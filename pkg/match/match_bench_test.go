package match

import (
	"context"
	"fmt"
	"testing"

	"github.com/labelforge/tagmatch/pkg/catalog"
	"github.com/labelforge/tagmatch/pkg/manifest"
)

// Benchmark data

func benchIndex(records int) *catalog.Index {
	vendors := []string{"Acme", "Bravo", "Charlie", "Delta"}
	types := []string{"Flower", "Cart", "Gummies", "Preroll"}
	rows := make([]catalog.Record, 0, records)
	for i := 0; i < records; i++ {
		rows = append(rows, catalog.Record{
			Name:   fmt.Sprintf("Strain %03d %s 1g", i, types[i%len(types)]),
			Vendor: vendors[i%len(vendors)],
		})
	}
	return catalog.Build(catalog.New(rows...))
}

func BenchmarkIndexBuild(b *testing.B) {
	rows := make([]catalog.Record, 0, 5000)
	for i := 0; i < 5000; i++ {
		rows = append(rows, catalog.Record{
			Name:   fmt.Sprintf("Strain %04d Flower 1g", i),
			Vendor: fmt.Sprintf("Vendor %d", i%40),
		})
	}
	cat := catalog.New(rows...)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = catalog.Build(cat)
	}
}

func BenchmarkSelect(b *testing.B) {
	idx := benchIndex(5000)
	cfg := DefaultConfig()
	selector := NewSelector(idx, &cfg)
	ic := NewItemContext(&manifest.Item{ProductName: "Strain 042 Cart 1g"}, VendorExtractor{})
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = selector.Select(ic)
	}
}

func BenchmarkScore(b *testing.B) {
	idx := benchIndex(100)
	cfg := DefaultConfig()
	scorer := NewScorer(&cfg)
	ic := NewItemContext(&manifest.Item{ProductName: "Strain 042 Cart 1g", Vendor: "Charlie"}, VendorExtractor{})
	cand := idx.VendorGroup("charlie")[0]
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = scorer.Score(ic, cand)
	}
}

func BenchmarkMatchManifest(b *testing.B) {
	idx := benchIndex(5000)
	items := make([]manifest.Item, 0, 200)
	for i := 0; i < 200; i++ {
		items = append(items, manifest.Item{
			ProductName: fmt.Sprintf("Strain %03d Gummies 1g", i*3%1000),
		})
	}
	ctx := context.Background()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		o, err := NewOrchestrator(idx, nil)
		if err != nil {
			b.Fatal(err)
		}
		_ = o.Match(ctx, items)
	}
}
