// Package match implements the manifest-to-catalog product-matching engine:
// candidate selection over the catalog index, heuristic scoring, the
// per-item orchestration loop with its cooperative timeout, and fallback
// record synthesis for items with no qualifying match.
package match

import (
	"time"

	"github.com/labelforge/tagmatch/pkg/errors"
)

// Default configuration values. Every heuristic literal is overridable
// through Options so callers can tune recall against precision.
const (
	// DefaultThreshold is the minimum score accepted as MATCHED.
	DefaultThreshold = 0.3

	// DefaultCandidateCap bounds per-item scoring work.
	DefaultCandidateCap = 50

	// DefaultEarlyStopScore stops scoring further candidates for an item
	// once any candidate reaches it.
	DefaultEarlyStopScore = 0.9

	// DefaultTimeout is the wall-clock budget for a whole run.
	DefaultTimeout = 600 * time.Second

	// DefaultBaseScore anchors the score of any candidate with key-term
	// overlap.
	DefaultBaseScore = 0.4

	// DefaultKeyTermWeight is the per-overlapping-term increment.
	DefaultKeyTermWeight = 0.1

	// DefaultKeyTermCap caps how many overlapping terms contribute.
	DefaultKeyTermCap = 3

	// DefaultVendorBonus rewards matching non-empty vendor tokens.
	DefaultVendorBonus = 0.3

	// DefaultVendorMismatchScore is the near-disqualifying score for
	// candidates from a different known vendor. Kept above zero so the
	// candidate stays sortable.
	DefaultVendorMismatchScore = 0.01

	// DefaultNonExactCeiling clamps every non-exact score, reserving 1.0
	// for true exact-name matches.
	DefaultNonExactCeiling = 0.95

	// DefaultSubstringProbeLimit gates the normalized-name substring probe:
	// it only runs while fewer candidates than this have been gathered.
	DefaultSubstringProbeLimit = 10

	// DefaultProgressEvery is the item cadence for progress reporting.
	DefaultProgressEvery = 25

	// DefaultReclaimEvery is the item cadence for releasing per-item
	// scratch memory on very large manifests.
	DefaultReclaimEvery = 250
)

// Config carries the tunable parameters of the matching engine.
type Config struct {
	Threshold           float64
	CandidateCap        int
	EarlyStopScore      float64
	Timeout             time.Duration
	BaseScore           float64
	KeyTermWeight       float64
	KeyTermCap          int
	VendorBonus         float64
	VendorMismatchScore float64
	NonExactCeiling     float64
	SubstringProbeLimit int
	ProgressEvery       int
	ReclaimEvery        int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:           DefaultThreshold,
		CandidateCap:        DefaultCandidateCap,
		EarlyStopScore:      DefaultEarlyStopScore,
		Timeout:             DefaultTimeout,
		BaseScore:           DefaultBaseScore,
		KeyTermWeight:       DefaultKeyTermWeight,
		KeyTermCap:          DefaultKeyTermCap,
		VendorBonus:         DefaultVendorBonus,
		VendorMismatchScore: DefaultVendorMismatchScore,
		NonExactCeiling:     DefaultNonExactCeiling,
		SubstringProbeLimit: DefaultSubstringProbeLimit,
		ProgressEvery:       DefaultProgressEvery,
		ReclaimEvery:        DefaultReclaimEvery,
	}
}

// validate checks the configuration for values the engine cannot run with.
func (c *Config) validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.NewValidationError("threshold", c.Threshold, "must be within [0,1]")
	}
	if c.EarlyStopScore < 0 || c.EarlyStopScore > 1 {
		return errors.NewValidationError("early_stop_score", c.EarlyStopScore, "must be within [0,1]")
	}
	if c.CandidateCap <= 0 {
		return errors.NewValidationError("candidate_cap", c.CandidateCap, "must be positive")
	}
	if c.Timeout <= 0 {
		return errors.NewValidationError("timeout", c.Timeout, "must be positive")
	}
	if c.NonExactCeiling <= 0 || c.NonExactCeiling >= 1 {
		return errors.NewValidationError("non_exact_ceiling", c.NonExactCeiling, "must be within (0,1)")
	}
	if c.ProgressEvery <= 0 {
		return errors.NewValidationError("progress_every", c.ProgressEvery, "must be positive")
	}
	return nil
}

// Option configures an Orchestrator.
type Option func(*Config) error

// WithThreshold sets the minimum score accepted as MATCHED.
func WithThreshold(threshold float64) Option {
	return func(c *Config) error {
		c.Threshold = threshold
		return nil
	}
}

// WithCandidateCap bounds the per-item candidate list.
func WithCandidateCap(n int) Option {
	return func(c *Config) error {
		c.CandidateCap = n
		return nil
	}
}

// WithEarlyStopScore sets the score at which scoring of remaining
// candidates for an item is skipped.
func WithEarlyStopScore(score float64) Option {
	return func(c *Config) error {
		c.EarlyStopScore = score
		return nil
	}
}

// WithTimeout sets the wall-clock budget for a run.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.Timeout = timeout
		return nil
	}
}

// WithWeights overrides the scoring weights: the base score for any
// key-term overlap, the per-term increment, and the vendor-match bonus.
func WithWeights(base, perTerm, vendorBonus float64) Option {
	return func(c *Config) error {
		c.BaseScore = base
		c.KeyTermWeight = perTerm
		c.VendorBonus = vendorBonus
		return nil
	}
}

// WithProgressEvery sets the progress reporting cadence in items.
func WithProgressEvery(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return errors.NewValidationError("progress_every", n, "must be positive")
		}
		c.ProgressEvery = n
		return nil
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) error {
		*c = cfg
		return nil
	}
}
