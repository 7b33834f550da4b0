/**
 * @description
 * Scoring engine configuration: weights, bounds, fee, and sizing. Mirrors
 * original_source/crates/scoring/src/config.rs and spec.md §6 exactly.
 */

package scoring

import "github.com/bankai-project/backend/internal/config"

// Config is the scoring engine's own view of config.ScoringConfig,
// narrowed to what internal/scoring needs (no cadence — that belongs to
// Orchestrator).
type Config struct {
	Weights Weights
	Bounds  Bounds
	FeeBps  float64
	Sizing  Sizing
}

// Weights are the linear coefficients in the overall-score composition.
type Weights struct {
	W1 float64
	W2 float64
	W3 float64
	W4 float64
	W5 float64
}

// Bounds are the eligibility/normalization bounds for the scoring engine.
type Bounds struct {
	MinTRemainingSec int64
	MaxTRemainingSec int64
	QuoteStaleMaxSec int64
	MinTDays         float64
	SpreadTarget     float64
}

// Sizing controls recommendation position sizing.
type Sizing struct {
	BasePositionPct float64
}

// DefaultConfig returns spec.md §6's documented scoring defaults.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{W1: 0.45, W2: 0.25, W3: 0.15, W4: 0.10, W5: 0.05},
		Bounds: Bounds{
			MinTRemainingSec: 3600,
			MaxTRemainingSec: 1209600,
			QuoteStaleMaxSec: 180,
			MinTDays:         0.25,
			SpreadTarget:     0.02,
		},
		FeeBps: 120.0,
		Sizing: Sizing{BasePositionPct: 0.10},
	}
}

// FromAppConfig adapts the process-wide config.ScoringConfig into the
// engine's own Config type.
func FromAppConfig(c config.ScoringConfig) Config {
	return Config{
		Weights: Weights{
			W1: c.Weights.W1, W2: c.Weights.W2, W3: c.Weights.W3,
			W4: c.Weights.W4, W5: c.Weights.W5,
		},
		Bounds: Bounds{
			MinTRemainingSec: c.Bounds.MinTRemainingSec,
			MaxTRemainingSec: c.Bounds.MaxTRemainingSec,
			QuoteStaleMaxSec: c.Bounds.QuoteStaleMaxSec,
			MinTDays:         c.Bounds.MinTDays,
			SpreadTarget:     c.Bounds.SpreadTarget,
		},
		FeeBps: c.FeeBps,
		Sizing: Sizing{BasePositionPct: c.Sizing.BasePositionPct},
	}
}
