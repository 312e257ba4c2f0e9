package match_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/tagmatch/pkg/catalog"
	"github.com/labelforge/tagmatch/pkg/manifest"
	"github.com/labelforge/tagmatch/pkg/match"
	"github.com/labelforge/tagmatch/pkg/strains"
)

func newOrchestrator(t *testing.T, idx *catalog.Index, opts ...match.Option) *match.Orchestrator {
	t.Helper()
	o, err := match.NewOrchestrator(idx, strains.NewStaticResolver(nil), opts...)
	require.NoError(t, err)
	return o
}

func items(names ...string) []manifest.Item {
	out := make([]manifest.Item, 0, len(names))
	for _, n := range names {
		out = append(out, manifest.Item{ProductName: n})
	}
	return out
}

func TestMatchExactName(t *testing.T) {
	idx := indexFor(t, catalog.Record{Name: "Blue Dream 1g", Vendor: "Acme"})
	o := newOrchestrator(t, idx)

	run := o.Match(context.Background(), []manifest.Item{
		{ProductName: "Blue Dream 1g", Vendor: "Acme"},
	})

	require.Equal(t, match.StateCompleted, run.State)
	require.Len(t, run.Results, 1)

	res := run.Results[0]
	assert.Equal(t, match.DecisionMatched, res.Decision)
	assert.Equal(t, 1.0, res.Score)

	rec, ok := res.Matched()
	require.True(t, ok)
	assert.Equal(t, "Blue Dream 1g", rec.Name)
}

func TestMatchVendorIsolation(t *testing.T) {
	// The only catalog record is close in name but from a different
	// vendor; strict isolation leaves the item with no candidates.
	idx := indexFor(t, catalog.Record{Name: "OG Kush Premium 1g", Vendor: "Acme"})
	o := newOrchestrator(t, idx)

	run := o.Match(context.Background(), []manifest.Item{
		{ProductName: "OG Kush Premium", Vendor: "OtherCo"},
	})

	require.Len(t, run.Results, 1)
	res := run.Results[0]
	assert.Equal(t, match.DecisionFallback, res.Decision)
	require.NotNil(t, res.Fallback)
	assert.Equal(t, "OG Kush Premium", res.Fallback.Name)
	assert.Equal(t, "otherco", res.Fallback.Vendor)
}

func TestMatchUnknownVendorCrossesVendors(t *testing.T) {
	idx := indexFor(t,
		catalog.Record{Name: "Sour Diesel 1g", Vendor: "Acme"},
		catalog.Record{Name: "Sour Diesel Premium 1g", Vendor: "Bravo"},
	)
	o := newOrchestrator(t, idx)

	// No vendor on the item: both records compete, highest token overlap
	// wins irrespective of vendor.
	run := o.Match(context.Background(), items("Sour Diesel Premium"))

	require.Len(t, run.Results, 1)
	res := run.Results[0]
	require.Equal(t, match.DecisionMatched, res.Decision)
	rec, _ := res.Matched()
	assert.Equal(t, "Sour Diesel Premium 1g", rec.Name)
}

func TestMatchEveryItemYieldsOneResult(t *testing.T) {
	idx := indexFor(t, catalog.Record{Name: "Blue Dream 1g", Vendor: "Acme"})
	o := newOrchestrator(t, idx)

	manifestItems := []manifest.Item{
		{ProductName: "Blue Dream 1g"},
		{}, // malformed: no product name
		{ProductName: "Completely Unknown Product XYZ"},
		{Vendor: "Acme"}, // malformed too
	}

	run := o.Match(context.Background(), manifestItems)

	require.Equal(t, match.StateCompleted, run.State)
	require.Len(t, run.Results, len(manifestItems))
	assert.Equal(t, len(manifestItems), run.Processed)

	// Malformed items degrade to fallback with minimal fields.
	assert.Equal(t, match.DecisionFallback, run.Results[1].Decision)
	assert.Equal(t, "Unknown Product", run.Results[1].Fallback.Name)
	assert.Equal(t, strains.LineageMixed, run.Results[1].Fallback.Lineage)
}

func TestMatchEmptyIndexDegradesToFallback(t *testing.T) {
	idx := catalog.Build(catalog.New())
	o := newOrchestrator(t, idx)

	run := o.Match(context.Background(), items("Blue Dream 1g", "OG Kush"))

	require.Equal(t, match.StateCompleted, run.State)
	require.Len(t, run.Results, 2)
	for _, res := range run.Results {
		assert.Equal(t, match.DecisionFallback, res.Decision)
		require.NotNil(t, res.Fallback)
	}
}

func TestMatchTimeout(t *testing.T) {
	idx := indexFor(t, catalog.Record{Name: "Blue Dream 1g", Vendor: "Acme"})
	o := newOrchestrator(t, idx, match.WithTimeout(time.Nanosecond))

	names := make([]string, 50)
	for i := range names {
		names[i] = fmt.Sprintf("Product %d", i)
	}
	run := o.Match(context.Background(), items(names...))

	assert.Equal(t, match.StateTimedOut, run.State)
	assert.True(t, run.TimedOut())
	assert.Less(t, run.Processed, len(names))
	assert.Len(t, run.Results, run.Processed)
}

func TestMatchContextCancellation(t *testing.T) {
	idx := indexFor(t, catalog.Record{Name: "Blue Dream 1g", Vendor: "Acme"})
	o := newOrchestrator(t, idx)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := o.Match(ctx, items("Blue Dream 1g"))
	assert.Equal(t, match.StateTimedOut, run.State)
	assert.Zero(t, run.Processed)
}

func TestMatchEarlyTermination(t *testing.T) {
	// Two candidates share vocabulary with the item; the second scores
	// higher. With a low early-stop score the first good-enough candidate
	// wins; with the default the better one does.
	rows := []catalog.Record{
		{Name: "Blue Dream Special"},
		{Name: "Blue Dream Special Reserve 1g"},
	}
	item := manifest.Item{ProductName: "Blue Dream Special Reserve"}

	t.Run("low early-stop accepts first good candidate", func(t *testing.T) {
		o := newOrchestrator(t, indexFor(t, rows...), match.WithEarlyStopScore(0.7))
		run := o.Match(context.Background(), []manifest.Item{item})
		rec, ok := run.Results[0].Matched()
		require.True(t, ok)
		assert.Equal(t, "Blue Dream Special", rec.Name)
	})

	t.Run("default early-stop keeps scoring", func(t *testing.T) {
		o := newOrchestrator(t, indexFor(t, rows...))
		run := o.Match(context.Background(), []manifest.Item{item})
		rec, ok := run.Results[0].Matched()
		require.True(t, ok)
		assert.Equal(t, "Blue Dream Special Reserve 1g", rec.Name)
	})
}

func TestMatchDeterminism(t *testing.T) {
	idx := indexFor(t,
		catalog.Record{Name: "Blue Dream 1g", Vendor: "Acme"},
		catalog.Record{Name: "Blue Dream 2g", Vendor: "Acme"},
		catalog.Record{Name: "Sour Diesel Cart", Vendor: "Bravo"},
		catalog.Record{Name: "Gelato Gummies 10pk", Vendor: "Charlie"},
	)

	manifestItems := []manifest.Item{
		{ProductName: "Blue Dream 1g", Vendor: "Acme"},
		{ProductName: "Sour Diesel"},
		{ProductName: "Gelato"},
		{ProductName: "No Such Product Anywhere"},
	}

	type outcome struct {
		decision match.Decision
		score    float64
		name     string
	}
	snapshot := func(run *match.Run) []outcome {
		out := make([]outcome, 0, len(run.Results))
		for i := range run.Results {
			res := &run.Results[i]
			out = append(out, outcome{res.Decision, res.Score, res.DisplayName()})
		}
		return out
	}

	first := snapshot(newOrchestrator(t, idx).Match(context.Background(), manifestItems))
	for i := 0; i < 5; i++ {
		again := snapshot(newOrchestrator(t, idx).Match(context.Background(), manifestItems))
		require.Equal(t, first, again)
	}
}

func TestMatchThreshold(t *testing.T) {
	idx := indexFor(t, catalog.Record{Name: "Blue Dream 1g", Vendor: "Acme"})

	// A perfectly matchable item falls back when the threshold is raised
	// above any achievable non-exact score.
	o := newOrchestrator(t, idx, match.WithThreshold(0.99))
	run := o.Match(context.Background(), items("Blue Dream Deluxe"))
	assert.Equal(t, match.DecisionFallback, run.Results[0].Decision)

	// The exact match still clears any threshold at 1.0.
	run = o.Match(context.Background(), items("Blue Dream 1g"))
	assert.Equal(t, match.DecisionMatched, run.Results[0].Decision)
}

func TestNewOrchestratorValidation(t *testing.T) {
	idx := indexFor(t, catalog.Record{Name: "Blue Dream 1g"})

	tests := []struct {
		name string
		opt  match.Option
	}{
		{"threshold above one", match.WithThreshold(1.5)},
		{"negative threshold", match.WithThreshold(-0.1)},
		{"zero candidate cap", match.WithCandidateCap(0)},
		{"zero timeout", match.WithTimeout(0)},
		{"zero progress cadence", func() match.Option {
			cfg := match.DefaultConfig()
			cfg.ProgressEvery = 0
			return match.WithConfig(cfg)
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := match.NewOrchestrator(idx, nil, tt.opt)
			require.Error(t, err)
		})
	}
}

// panickingResolver simulates a lineage collaborator that blows up on
// every lookup.
type panickingResolver struct{}

func (panickingResolver) Resolve(context.Context, string) (string, bool) {
	panic("lineage store unavailable")
}

func TestMatchPanicIsolation(t *testing.T) {
	idx := indexFor(t, catalog.Record{Name: "Blue Dream 1g", Vendor: "Acme"})
	o, err := match.NewOrchestrator(idx, panickingResolver{})
	require.NoError(t, err)

	// The first item has no candidates and falls back, which drives the
	// resolver into its panic; the second must still be processed.
	run := o.Match(context.Background(), []manifest.Item{
		{ProductName: "Zzz Qqq Widget"},
		{ProductName: "Blue Dream 1g", Vendor: "Acme"},
	})

	require.Equal(t, match.StateCompleted, run.State)
	require.Len(t, run.Results, 2)

	first := run.Results[0]
	assert.Equal(t, match.DecisionFallback, first.Decision)
	require.NotNil(t, first.Fallback)
	assert.Equal(t, "Zzz Qqq Widget", first.Fallback.Name)
	assert.Equal(t, strains.LineageMixed, first.Fallback.Lineage)

	second := run.Results[1]
	assert.Equal(t, match.DecisionMatched, second.Decision)
	assert.Equal(t, 1.0, second.Score)
}

func TestMatchSubstringProbeRecall(t *testing.T) {
	// "big" and "cat" fall below the key-term length floor, so these
	// records are only reachable through the substring probe; the scorer
	// must still lift them past the threshold.
	idx := indexFor(t, catalog.Record{Name: "Big Cat Vape", Vendor: "Acme"})
	o := newOrchestrator(t, idx)

	run := o.Match(context.Background(), items("Big Cat"))

	require.Len(t, run.Results, 1)
	res := run.Results[0]
	require.Equal(t, match.DecisionMatched, res.Decision)
	rec, _ := res.Matched()
	assert.Equal(t, "Big Cat Vape", rec.Name)
	assert.GreaterOrEqual(t, res.Score, match.DefaultThreshold)
}

func TestFallbackLineage(t *testing.T) {
	idx := catalog.Build(catalog.New())
	o := newOrchestrator(t, idx)

	run := o.Match(context.Background(), []manifest.Item{
		{ProductName: "House Blend 1g", Strain: "Sour Diesel"},
		{ProductName: "Blue Dream Shake"},
		{ProductName: "Mystery Extract", LineageHint: "sativa"},
		{ProductName: "Totally Unknown"},
	})

	require.Len(t, run.Results, 4)
	assert.Equal(t, strains.LineageSativa, run.Results[0].Fallback.Lineage)
	assert.Equal(t, strains.LineageHybrid, run.Results[1].Fallback.Lineage)
	assert.Equal(t, "SATIVA", run.Results[2].Fallback.Lineage)
	assert.Equal(t, strains.LineageMixed, run.Results[3].Fallback.Lineage)
}
