/**
 * @description
 * The scoring engine: pure functions composing time-to-expiry, net yield,
 * yield velocity, liquidity quality, quote staleness, and definition risk
 * into a single ranked score and a sized recommendation. No I/O; every
 * function here is a deterministic function of its arguments, grounded
 * line-for-line on original_source/crates/scoring/src/engine.rs.
 *
 * @dependencies
 * - standard "errors", "fmt", "math", "time"
 * - backend/internal/domain
 */

package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bankai-project/backend/internal/domain"
)

// Errors the engine can signal for one (market, quote, rule) triple.
var (
	ErrMissingQuote  = errors.New("scoring: no_bid/no_ask required")
	ErrInvalidMarket = errors.New("scoring: close_time missing or outside eligibility bounds")
)

// ComputeScore computes the opportunity Score for one market from its
// current quote and (optional) rule snapshot, as of now. Follows the
// 8-step computation in spec.md §4.4 exactly.
func ComputeScore(market domain.Market, quote domain.Quote, rule *domain.RuleSnapshot, now time.Time, cfg Config) (domain.Score, error) {
	if market.CloseTime == nil {
		return domain.Score{}, ErrInvalidMarket
	}

	tRemainingSec := int64(market.CloseTime.Sub(now).Seconds())
	if tRemainingSec < cfg.Bounds.MinTRemainingSec || tRemainingSec > cfg.Bounds.MaxTRemainingSec {
		return domain.Score{}, ErrInvalidMarket
	}

	stalenessSec := int64(now.Sub(quote.AsOf).Seconds())
	stalenessPenalty := calculateStalenessPenalty(stalenessSec, cfg.Bounds.QuoteStaleMaxSec)

	if quote.NoBid == nil || quote.NoAsk == nil {
		return domain.Score{}, ErrMissingQuote
	}
	entryPrice := *quote.NoBid
	grossYield := entryPrice

	feeRate := cfg.FeeBps / 10000.0
	netYield := grossYield * (1 - feeRate)

	tDays := float64(tRemainingSec) / 86400.0
	tDaysClamped := math.Max(tDays, cfg.Bounds.MinTDays)
	yieldVelocity := netYield / tDaysClamped

	liquidityScore := calculateLiquidityScore(*quote.NoBid, *quote.NoAsk, cfg.Bounds.SpreadTarget, stalenessPenalty)

	definitionRiskScore := 0.0
	if rule != nil {
		definitionRiskScore = rule.DefinitionRiskScore
	}

	overallScore := calculateOverallScore(yieldVelocity, netYield, liquidityScore, definitionRiskScore, stalenessPenalty, cfg.Weights)

	return domain.Score{
		MarketID:            market.MarketID,
		AsOf:                now,
		TRemainingSec:       tRemainingSec,
		GrossYield:          grossYield,
		FeeBps:              cfg.FeeBps,
		NetYield:            netYield,
		YieldVelocity:       yieldVelocity,
		LiquidityScore:      liquidityScore,
		StalenessSec:        stalenessSec,
		StalenessPenalty:    stalenessPenalty,
		DefinitionRiskScore: definitionRiskScore,
		OverallScore:        overallScore,
		ScoreBreakdown: map[string]float64{
			"yield_velocity":        yieldVelocity,
			"net_yield":             netYield,
			"liquidity_score":       liquidityScore,
			"definition_risk_score": definitionRiskScore,
			"staleness_penalty":     stalenessPenalty,
			"gross_yield":           grossYield,
			"fee_rate":              feeRate,
			"t_days":                tDays,
			"entry_price":           entryPrice,
		},
	}, nil
}

// calculateStalenessPenalty is a linear ramp from 0 at stalenessSec=0 to
// 1 at stalenessSec=quoteStaleMaxSec, saturating thereafter (invariant 4,
// spec.md §8).
func calculateStalenessPenalty(stalenessSec, quoteStaleMaxSec int64) float64 {
	if quoteStaleMaxSec <= 0 {
		return 1.0
	}
	ratio := float64(stalenessSec) / float64(quoteStaleMaxSec)
	return clamp(ratio, 0, 1)
}

// calculateLiquidityScore rewards a tight no-side spread, discounted by
// quote staleness. Bounded to [0,1] for all bid <= ask (invariant 5,
// spec.md §8).
func calculateLiquidityScore(noBid, noAsk, spreadTarget, stalenessPenalty float64) float64 {
	spreadNo := noAsk - noBid
	rawScore := clamp(1.0-spreadNo/spreadTarget, 0, 1)
	return rawScore * (1.0 - stalenessPenalty)
}

// calculateOverallScore composes the five normalized/weighted terms into
// the final ranking, clamped to [0,1] regardless of configuration
// (invariant 6, spec.md §8).
func calculateOverallScore(yieldVelocity, netYield, liquidityScore, definitionRiskScore, stalenessPenalty float64, w Weights) float64 {
	normVelocity := clamp(yieldVelocity/1.0, 0, 1)
	normNetYield := clamp(netYield/0.5, 0, 1)

	score := w.W1*normVelocity + w.W2*normNetYield + w.W3*liquidityScore -
		w.W4*definitionRiskScore - w.W5*stalenessPenalty

	return clamp(score, 0, 1)
}

// GenerateRecommendation sizes and annotates a recommendation from an
// already-computed Score. Never fails: the score and quote are assumed
// present by construction (the caller only calls this after ComputeScore
// succeeded).
func GenerateRecommendation(market domain.Market, score domain.Score, quote domain.Quote, rule *domain.RuleSnapshot, cfg Config) domain.Recommendation {
	entryPrice := 0.0
	if quote.NoBid != nil {
		entryPrice = *quote.NoBid
	}

	maxPositionPct := calculatePositionSize(score, cfg.Sizing)

	// risk_score is intentionally NOT clamped — see DESIGN.md Open
	// Question (b); downstream filters may exceed 1.0.
	riskScore := score.DefinitionRiskScore + score.StalenessPenalty

	var riskFlags []domain.RiskFlag
	if rule != nil {
		riskFlags = rule.RiskFlags
	}

	notes := formatNotes(score.NetYield, score.YieldVelocity, score.LiquidityScore, riskScore)

	return domain.Recommendation{
		MarketID:        market.MarketID,
		AsOf:            score.AsOf,
		RecommendedSide: "NO",
		EntryPrice:      entryPrice,
		ExpectedPayout:  1.0,
		MaxPositionPct:  maxPositionPct,
		RiskScore:       riskScore,
		RiskFlags:       riskFlags,
		Notes:           &notes,
	}
}

// calculatePositionSize haircuts the configured base position size by
// definition risk and rewards liquidity, clamped to [0.01, 0.10]
// (invariant 7, spec.md §8).
func calculatePositionSize(score domain.Score, sizing Sizing) float64 {
	riskHaircut := 1.0 - score.DefinitionRiskScore
	liqHaircut := 0.5 + 0.5*score.LiquidityScore
	positionPct := sizing.BasePositionPct * riskHaircut * liqHaircut
	return clamp(positionPct, 0.01, 0.10)
}

func formatNotes(netYield, yieldVelocity, liquidityScore, riskScore float64) string {
	return fmt.Sprintf("Yield: %.2f%% | Velocity: %.2f%% | Liquidity: %.2f | Risk: %.2f",
		netYield*100, yieldVelocity*100, liquidityScore, riskScore)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
