/**
 * @description
 * GORM row types for the opportunity-scoring schema, separate from
 * internal/domain's plain value types (same separation the Rust original
 * draws between pm_domain and pm_storage). Numeric columns use
 * shopspring/decimal so reads never drift from what was written, per
 * spec.md §9 ("persist numerics as arbitrary-precision decimals").
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/shopspring/decimal
 */

package storage

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankai-project/backend/internal/domain"
)

// riskFlagsJSON is the on-disk JSON encoding of []domain.RiskFlag, the
// teacher's StringArray Scan/Value pattern applied to a richer payload.
type riskFlagsJSON []domain.RiskFlag

func (f *riskFlagsJSON) Scan(src interface{}) error {
	if src == nil {
		*f = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			*f = nil
			return nil
		}
		return json.Unmarshal(v, f)
	case string:
		if v == "" {
			*f = nil
			return nil
		}
		return json.Unmarshal([]byte(v), f)
	default:
		return errors.New("type assertion failed for riskFlagsJSON")
	}
}

func (f riskFlagsJSON) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	return json.Marshal([]domain.RiskFlag(f))
}

// scoreBreakdownJSON is the on-disk JSON encoding of a Score's
// score_breakdown map.
type scoreBreakdownJSON map[string]float64

func (b *scoreBreakdownJSON) Scan(src interface{}) error {
	if src == nil {
		*b = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			*b = nil
			return nil
		}
		return json.Unmarshal(v, b)
	case string:
		if v == "" {
			*b = nil
			return nil
		}
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("type assertion failed for scoreBreakdownJSON")
	}
}

func (b scoreBreakdownJSON) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	return json.Marshal(map[string]float64(b))
}

// MarketRow maps to the `markets` table.
type MarketRow struct {
	MarketID     string     `gorm:"primaryKey;column:market_id"`
	Venue        string     `gorm:"column:venue"`
	Title        string     `gorm:"column:title"`
	Slug         *string    `gorm:"column:slug"`
	Category     *string    `gorm:"column:category"`
	Status       string     `gorm:"column:status"`
	OpenTime     *time.Time `gorm:"column:open_time"`
	CloseTime    *time.Time `gorm:"column:close_time"`
	ResolvedTime *time.Time `gorm:"column:resolved_time"`
	URL          *string    `gorm:"column:url"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (MarketRow) TableName() string { return "markets" }

// OutcomeRow maps to the `market_outcomes` table. Supplemented feature —
// see SPEC_FULL.md §3/§4.6.
type OutcomeRow struct {
	MarketID string  `gorm:"primaryKey;column:market_id"`
	Outcome  string  `gorm:"primaryKey;column:outcome"`
	TokenID  *string `gorm:"column:token_id"`
}

func (OutcomeRow) TableName() string { return "market_outcomes" }

// QuoteLatestRow maps to the `quotes_latest` table (overwritten per poll).
type QuoteLatestRow struct {
	MarketID    string          `gorm:"primaryKey;column:market_id"`
	AsOf        time.Time       `gorm:"column:as_of"`
	YesBid      *decimal.Decimal `gorm:"column:yes_bid;type:numeric"`
	YesAsk      *decimal.Decimal `gorm:"column:yes_ask;type:numeric"`
	NoBid       *decimal.Decimal `gorm:"column:no_bid;type:numeric"`
	NoAsk       *decimal.Decimal `gorm:"column:no_ask;type:numeric"`
	SpreadYes   *decimal.Decimal `gorm:"column:spread_yes;type:numeric"`
	SpreadNo    *decimal.Decimal `gorm:"column:spread_no;type:numeric"`
	MidYes      *decimal.Decimal `gorm:"column:mid_yes;type:numeric"`
	MidNo       *decimal.Decimal `gorm:"column:mid_no;type:numeric"`
	QuoteSource string          `gorm:"column:quote_source"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteLatestRow) TableName() string { return "quotes_latest" }

// Quote5mRow maps to the `quotes_5m` table (append-once per bucket).
type Quote5mRow struct {
	MarketID    string          `gorm:"primaryKey;column:market_id"`
	BucketStart time.Time       `gorm:"primaryKey;column:bucket_start"`
	YesBid      *decimal.Decimal `gorm:"column:yes_bid;type:numeric"`
	YesAsk      *decimal.Decimal `gorm:"column:yes_ask;type:numeric"`
	NoBid       *decimal.Decimal `gorm:"column:no_bid;type:numeric"`
	NoAsk       *decimal.Decimal `gorm:"column:no_ask;type:numeric"`
	QuoteSource string          `gorm:"column:quote_source"`
}

func (Quote5mRow) TableName() string { return "quotes_5m" }

// RuleLatestRow maps to the `rules_latest` table.
type RuleLatestRow struct {
	MarketID            string          `gorm:"primaryKey;column:market_id"`
	AsOf                time.Time       `gorm:"column:as_of"`
	RuleText            string          `gorm:"column:rule_text"`
	RuleHash            string          `gorm:"column:rule_hash"`
	SettlementSource    *string         `gorm:"column:settlement_source"`
	SettlementWindow    *string         `gorm:"column:settlement_window"`
	DefinitionRiskScore decimal.Decimal `gorm:"column:definition_risk_score;type:numeric"`
	RiskFlags           riskFlagsJSON   `gorm:"column:risk_flags;type:jsonb"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (RuleLatestRow) TableName() string { return "rules_latest" }

// ScoreLatestRow maps to the `scores_latest` table.
type ScoreLatestRow struct {
	MarketID            string             `gorm:"primaryKey;column:market_id"`
	AsOf                time.Time          `gorm:"column:as_of"`
	TRemainingSec       int64              `gorm:"column:t_remaining_sec"`
	GrossYield          decimal.Decimal    `gorm:"column:gross_yield;type:numeric"`
	FeeBps              decimal.Decimal    `gorm:"column:fee_bps;type:numeric"`
	NetYield            decimal.Decimal    `gorm:"column:net_yield;type:numeric"`
	YieldVelocity       decimal.Decimal    `gorm:"column:yield_velocity;type:numeric"`
	LiquidityScore      decimal.Decimal    `gorm:"column:liquidity_score;type:numeric"`
	StalenessSec        int64              `gorm:"column:staleness_sec"`
	StalenessPenalty    decimal.Decimal    `gorm:"column:staleness_penalty;type:numeric"`
	DefinitionRiskScore decimal.Decimal    `gorm:"column:definition_risk_score;type:numeric"`
	OverallScore        decimal.Decimal    `gorm:"column:overall_score;type:numeric"`
	ScoreBreakdown      scoreBreakdownJSON `gorm:"column:score_breakdown;type:jsonb"`
	UpdatedAt           time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (ScoreLatestRow) TableName() string { return "scores_latest" }

// RecLatestRow maps to the `recs_latest` table.
type RecLatestRow struct {
	MarketID        string          `gorm:"primaryKey;column:market_id"`
	AsOf            time.Time       `gorm:"column:as_of"`
	RecommendedSide string          `gorm:"column:recommended_side"`
	EntryPrice      decimal.Decimal `gorm:"column:entry_price;type:numeric"`
	ExpectedPayout  decimal.Decimal `gorm:"column:expected_payout;type:numeric"`
	MaxPositionPct  decimal.Decimal `gorm:"column:max_position_pct;type:numeric"`
	RiskScore       decimal.Decimal `gorm:"column:risk_score;type:numeric"`
	RiskFlags       riskFlagsJSON   `gorm:"column:risk_flags;type:jsonb"`
	Notes           *string         `gorm:"column:notes"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (RecLatestRow) TableName() string { return "recs_latest" }

// --- conversions between domain types and decimal-backed rows ---

func decFromFloatPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func floatPtrFromDec(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}
