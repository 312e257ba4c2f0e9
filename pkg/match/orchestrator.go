package match

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/labelforge/tagmatch/pkg/catalog"
	"github.com/labelforge/tagmatch/pkg/errors"
	"github.com/labelforge/tagmatch/pkg/logging"
	"github.com/labelforge/tagmatch/pkg/manifest"
	"github.com/labelforge/tagmatch/pkg/strains"
)

// State is the lifecycle state of a matching run.
type State int

// Run states.
const (
	StateInit State = iota
	StateProcessing
	StateCompleted
	StateTimedOut
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateProcessing:
		return "PROCESSING"
	case StateCompleted:
		return "COMPLETED"
	case StateTimedOut:
		return "TIMED_OUT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Run is the outcome of one matching invocation. Results hold exactly one
// entry per processed manifest item, in input order; on timeout the items
// past Processed were never reached and Results is shorter than Total.
type Run struct {
	// ID identifies this run in logs.
	ID string

	// State is COMPLETED or TIMED_OUT once the run returns.
	State State

	// CatalogVersion is the index version the run matched against.
	CatalogVersion string

	// Results are the per-item outcomes, in input order.
	Results []Result

	// Processed counts items that produced a result.
	Processed int

	// Total is the manifest item count.
	Total int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// TimedOut reports whether the run hit its deadline before finishing.
func (r *Run) TimedOut() bool {
	return r.State == StateTimedOut
}

// Matched counts MATCHED results.
func (r *Run) Matched() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Decision == DecisionMatched {
			n++
		}
	}
	return n
}

// Orchestrator drives the per-item matching pipeline over one read-only
// catalog index. An Orchestrator is single-use state per invocation family:
// concurrent runs each need their own Orchestrator but may share the index.
type Orchestrator struct {
	index     *catalog.Index
	cfg       Config
	state     State
	extractor VendorExtractor
	selector  *Selector
	scorer    *Scorer
	tags      *TagBuilder
}

// NewOrchestrator creates an Orchestrator over the given index. The strain
// resolver feeds fallback lineage and may be nil.
func NewOrchestrator(index *catalog.Index, resolver strains.Resolver, opts ...Option) (*Orchestrator, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Orchestrator{
		index:    index,
		cfg:      cfg,
		state:    StateInit,
		selector: NewSelector(index, &cfg),
		scorer:   NewScorer(&cfg),
		tags:     NewTagBuilder(resolver),
	}, nil
}

// State returns the orchestrator's current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Config returns the effective configuration.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Match processes every manifest item in input order and returns one result
// per item reached before the deadline.
//
// The timeout is cooperative: the deadline is checked at the top of the
// per-item loop, so an in-flight item's scoring always completes before the
// run aborts. On expiry the run is marked TIMED_OUT and all results
// computed so far are returned, never discarded. Item-level failures are
// isolated: a panic while matching one item is logged and converted to a
// fallback result for that item only.
func (o *Orchestrator) Match(ctx context.Context, items []manifest.Item) *Run {
	log := logging.FromContext(ctx)
	start := time.Now()

	run := &Run{
		ID:             uuid.NewString(),
		CatalogVersion: o.index.Version(),
		Results:        make([]Result, 0, len(items)),
		Total:          len(items),
	}

	o.state = StateProcessing
	deadline := start.Add(o.cfg.Timeout)

	if o.index.Empty() {
		// Degrade the whole run to fallback instead of failing it.
		err := errors.NewIndexUnavailableError(run.CatalogVersion, "no records indexed")
		log.Warn().Err(err).Str("run_id", run.ID).Msg("Catalog index unavailable, all items fall back")
	}

	log.Info().
		Str("run_id", run.ID).
		Str("catalog_version", run.CatalogVersion).
		Int("items", len(items)).
		Int("catalog_size", o.index.Len()).
		Msg("Matching manifest against catalog")

	for i := range items {
		if time.Now().After(deadline) || ctx.Err() != nil {
			o.state = StateTimedOut
			run.State = StateTimedOut
			run.Processed = len(run.Results)
			run.Elapsed = time.Since(start)
			log.Warn().
				Str("run_id", run.ID).
				Int("processed", run.Processed).
				Int("total", run.Total).
				Dur("elapsed", run.Elapsed).
				Msg("Deadline reached, returning partial results")
			return run
		}

		run.Results = append(run.Results, o.matchItem(ctx, &items[i], i))

		if (i+1)%o.cfg.ProgressEvery == 0 {
			log.Info().
				Str("run_id", run.ID).
				Int("processed", i+1).
				Int("total", run.Total).
				Msg("Matching progress")
		}
		if o.cfg.ReclaimEvery > 0 && (i+1)%o.cfg.ReclaimEvery == 0 {
			o.selector.reclaim()
		}
	}

	o.state = StateCompleted
	run.State = StateCompleted
	run.Processed = len(run.Results)
	run.Elapsed = time.Since(start)

	log.Info().
		Str("run_id", run.ID).
		Int("matched", run.Matched()).
		Int("fallback", run.Processed-run.Matched()).
		Dur("elapsed", run.Elapsed).
		Msg("Matching complete")
	return run
}

// matchItem produces the result for one item without ever failing the run:
// malformed items, empty indexes, and per-item panics all degrade to
// fallback results.
func (o *Orchestrator) matchItem(ctx context.Context, it *manifest.Item, position int) (res Result) {
	log := logging.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Int("item", position).
				Str("product_name", it.ProductName).
				Msg("Item matching panicked, falling back")
			// The panic may have come from a fallback collaborator, so this
			// path must not call back into the resolver.
			res = Result{
				Item:     *it,
				Decision: DecisionFallback,
				Fallback: o.tags.BuildMinimal(it),
			}
		}
	}()

	if !it.HasProductName() {
		log.Debug().Err(errors.NewMalformedItemError(position, "missing product_name")).Msg("Malformed item falls back")
		return o.fallback(ctx, it, 0)
	}
	if o.index.Empty() {
		return o.fallback(ctx, it, 0)
	}

	ic := NewItemContext(it, o.extractor)
	candidates := o.selector.Select(ic)

	var best *catalog.Record
	bestScore := 0.0
	for _, cand := range candidates {
		score := o.scorer.Score(ic, cand)
		if score > bestScore {
			bestScore = score
			best = cand
		}
		// Early termination: good enough beats exhaustive. A later
		// candidate could in principle score higher; accepted tradeoff.
		if bestScore >= o.cfg.EarlyStopScore {
			break
		}
	}

	if best != nil && bestScore >= o.cfg.Threshold {
		return Result{
			Item:     *it,
			Decision: DecisionMatched,
			Score:    bestScore,
			Record:   best,
		}
	}
	return o.fallback(ctx, it, bestScore)
}

// fallback builds the FALLBACK result for an item.
func (o *Orchestrator) fallback(ctx context.Context, it *manifest.Item, bestScore float64) Result {
	return Result{
		Item:     *it,
		Decision: DecisionFallback,
		Score:    bestScore,
		Fallback: o.tags.Build(ctx, it),
	}
}
