package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/bankai-project/backend/internal/domain"
)

func ptr(f float64) *float64 { return &f }

func closeEnough(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Invariant 4 (spec.md §8): calculateStalenessPenalty is non-decreasing,
// 0 at staleness=0, 1 at staleness=quote_stale_max_sec, saturates at 1.
// Mirrors original_source's test_staleness_penalty.
func TestCalculateStalenessPenalty(t *testing.T) {
	const maxSec = 180

	cases := []struct {
		staleness int64
		want      float64
	}{
		{0, 0.0},
		{90, 0.5},
		{180, 1.0},
		{360, 1.0},
	}

	for _, tc := range cases {
		got := calculateStalenessPenalty(tc.staleness, maxSec)
		if !closeEnough(got, tc.want, 1e-9) {
			t.Fatalf("calculateStalenessPenalty(%d, %d) = %v, want %v", tc.staleness, maxSec, got, tc.want)
		}
	}
}

// Invariant 5 (spec.md §8): liquidity score in [0,1]; 0 at/above target
// spread; 1 at zero spread with zero staleness.
// Mirrors original_source's test_liquidity_score.
func TestCalculateLiquidityScore(t *testing.T) {
	const spreadTarget = 0.02

	// perfect: no spread, no staleness
	got := calculateLiquidityScore(0.95, 0.95, spreadTarget, 0.0)
	if !closeEnough(got, 1.0, 1e-9) {
		t.Fatalf("perfect liquidity = %v, want 1.0", got)
	}

	// exactly at target spread
	got = calculateLiquidityScore(0.94, 0.96, spreadTarget, 0.0)
	if !closeEnough(got, 0.0, 1e-9) {
		t.Fatalf("at-target liquidity = %v, want 0.0", got)
	}

	// staleness halves a perfect score
	got = calculateLiquidityScore(0.95, 0.95, spreadTarget, 0.5)
	if !closeEnough(got, 0.5, 1e-9) {
		t.Fatalf("staleness-halved liquidity = %v, want 0.5", got)
	}
}

func TestCalculateLiquidityScoreBounds(t *testing.T) {
	got := calculateLiquidityScore(0.10, 0.99, 0.02, 0.0)
	if got < 0 || got > 1 {
		t.Fatalf("liquidity score out of bounds: %v", got)
	}
}

func baseMarket(closeIn time.Duration, now time.Time) domain.Market {
	ct := now.Add(closeIn)
	return domain.Market{
		MarketID:  "mkt-1",
		Venue:     "polymarket",
		Title:     "Test market",
		Status:    domain.MarketStatusActive,
		CloseTime: &ct,
	}
}

// S1 Scoring happy path (spec.md §8).
func TestScenarioS1HappyPath(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	market := baseMarket(24*time.Hour, now)
	quote := domain.Quote{
		MarketID: "mkt-1",
		AsOf:     now,
		NoBid:    ptr(0.92),
		NoAsk:    ptr(0.94),
	}
	cfg := DefaultConfig()

	score, err := ComputeScore(market, quote, nil, now, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.TRemainingSec != 86400 {
		t.Fatalf("t_remaining_sec = %d, want 86400", score.TRemainingSec)
	}
	if score.StalenessSec != 0 || score.StalenessPenalty != 0 {
		t.Fatalf("expected zero staleness, got sec=%d penalty=%v", score.StalenessSec, score.StalenessPenalty)
	}
	if !closeEnough(score.NetYield, 0.92*(1-0.012), 1e-9) {
		t.Fatalf("net_yield = %v, want %v", score.NetYield, 0.92*(1-0.012))
	}
	if !closeEnough(score.LiquidityScore, 0.0, 1e-9) {
		t.Fatalf("liquidity_score = %v, want 0.0", score.LiquidityScore)
	}
	// yield_velocity = 0.90896 stays below 1, so the velocity term is
	// 0.45*0.90896; net_yield/0.5 saturates, so that term is 0.25.
	if !closeEnough(score.OverallScore, 0.659032, 1e-6) {
		t.Fatalf("overall_score = %v, want 0.659032", score.OverallScore)
	}

	rec := GenerateRecommendation(market, score, quote, nil, cfg)
	if !closeEnough(rec.EntryPrice, 0.92, 1e-9) {
		t.Fatalf("entry_price = %v, want 0.92", rec.EntryPrice)
	}
	if !closeEnough(rec.MaxPositionPct, 0.05, 1e-6) {
		t.Fatalf("max_position_pct = %v, want 0.05", rec.MaxPositionPct)
	}
	if rec.RiskScore != 0.0 {
		t.Fatalf("risk_score = %v, want 0.0", rec.RiskScore)
	}
}

// S2 Stale quote (spec.md §8).
func TestScenarioS2StaleQuote(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	market := baseMarket(24*time.Hour, now)
	quote := domain.Quote{
		MarketID: "mkt-1",
		AsOf:     now.Add(-90 * time.Second),
		NoBid:    ptr(0.92),
		NoAsk:    ptr(0.94),
	}
	cfg := DefaultConfig()

	score, err := ComputeScore(market, quote, nil, now, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !closeEnough(score.StalenessPenalty, 0.5, 1e-9) {
		t.Fatalf("staleness_penalty = %v, want 0.5", score.StalenessPenalty)
	}
	if !closeEnough(score.LiquidityScore, 0.0, 1e-9) {
		t.Fatalf("liquidity_score = %v, want 0.0", score.LiquidityScore)
	}
	if !closeEnough(score.OverallScore, 0.659032-0.025, 1e-6) {
		t.Fatalf("overall_score = %v, want %v", score.OverallScore, 0.659032-0.025)
	}
}

// S3 Ineligible (too far) (spec.md §8).
func TestScenarioS3Ineligible(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	market := baseMarket(20*24*time.Hour, now)
	quote := domain.Quote{MarketID: "mkt-1", AsOf: now, NoBid: ptr(0.92), NoAsk: ptr(0.94)}
	cfg := DefaultConfig()

	_, err := ComputeScore(market, quote, nil, now, cfg)
	if err != ErrInvalidMarket {
		t.Fatalf("err = %v, want ErrInvalidMarket", err)
	}
}

// S4 Risky rule (spec.md §8).
func TestScenarioS4RiskyRule(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	market := baseMarket(24*time.Hour, now)
	quote := domain.Quote{MarketID: "mkt-1", AsOf: now, NoBid: ptr(0.92), NoAsk: ptr(0.94)}
	rule := &domain.RuleSnapshot{
		MarketID:            "mkt-1",
		RuleText:             "Resolved at the sole discretion of the committee.",
		DefinitionRiskScore: 0.30,
		RiskFlags: []domain.RiskFlag{
			{Code: "SUBJECTIVE_RESOLUTION", Severity: domain.SeverityHigh},
		},
	}
	cfg := DefaultConfig()

	score, err := ComputeScore(market, quote, rule, now, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeEnough(score.OverallScore, 0.659032-0.03, 1e-6) {
		t.Fatalf("overall_score = %v, want %v", score.OverallScore, 0.659032-0.03)
	}

	rec := GenerateRecommendation(market, score, quote, rule, cfg)
	if !closeEnough(rec.MaxPositionPct, 0.035, 1e-6) {
		t.Fatalf("max_position_pct = %v, want 0.035", rec.MaxPositionPct)
	}
}

// Invariant 8 (spec.md §8): compute_score returns InvalidMarket iff
// t_remaining_sec is outside bounds or close_time is absent.
func TestEligibilityGate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	quote := domain.Quote{MarketID: "mkt-1", AsOf: now, NoBid: ptr(0.92), NoAsk: ptr(0.94)}

	noClose := domain.Market{MarketID: "mkt-1", Status: domain.MarketStatusActive}
	if _, err := ComputeScore(noClose, quote, nil, now, cfg); err != ErrInvalidMarket {
		t.Fatalf("missing close_time: err = %v, want ErrInvalidMarket", err)
	}

	tooSoon := baseMarket(10*time.Minute, now)
	if _, err := ComputeScore(tooSoon, quote, nil, now, cfg); err != ErrInvalidMarket {
		t.Fatalf("too soon: err = %v, want ErrInvalidMarket", err)
	}

	eligible := baseMarket(24*time.Hour, now)
	if _, err := ComputeScore(eligible, quote, nil, now, cfg); err != nil {
		t.Fatalf("eligible market rejected: %v", err)
	}
}

// Invariant 8b: MissingQuote when no_bid/no_ask absent.
func TestMissingQuote(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	market := baseMarket(24*time.Hour, now)
	quote := domain.Quote{MarketID: "mkt-1", AsOf: now}
	cfg := DefaultConfig()

	_, err := ComputeScore(market, quote, nil, now, cfg)
	if err != ErrMissingQuote {
		t.Fatalf("err = %v, want ErrMissingQuote", err)
	}
}

// Invariant 7 (spec.md §8): max_position_pct in [0.01, 0.10] for a range
// of definition-risk/liquidity combinations.
func TestSizingBounds(t *testing.T) {
	sizing := Sizing{BasePositionPct: 0.10}

	cases := []domain.Score{
		{DefinitionRiskScore: 0.0, LiquidityScore: 0.0},
		{DefinitionRiskScore: 1.0, LiquidityScore: 1.0},
		{DefinitionRiskScore: 0.5, LiquidityScore: 0.5},
	}

	for _, s := range cases {
		got := calculatePositionSize(s, sizing)
		if got < 0.01 || got > 0.10 {
			t.Fatalf("max_position_pct = %v, want in [0.01,0.10]", got)
		}
	}
}

// Invariant 6 (spec.md §8): overall_score in [0,1] across a spread of inputs.
func TestOverallScoreBounds(t *testing.T) {
	w := DefaultConfig().Weights
	cases := [][5]float64{
		{0, 0, 0, 0, 0},
		{10, 10, 1, 1, 1},
		{-5, -5, -1, 2, 2},
		{1, 1, 1, 0, 0},
	}
	for _, c := range cases {
		got := calculateOverallScore(c[0], c[1], c[2], c[3], c[4], w)
		if got < 0 || got > 1 {
			t.Fatalf("overall_score out of bounds for inputs %v: %v", c, got)
		}
	}
}
