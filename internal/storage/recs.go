/**
 * @description
 * Recommendation storage: the recs_latest table, plus the read API's
 * primary query — ListRecs/CountRecs join recs_latest to scores_latest on
 * market_id so callers can filter/order on overall_score, per spec.md
 * §4.6 (richer than original_source's list_top_recs, which only filters
 * on risk_score/has_flags and orders by risk_score ASC; that function is
 * style grounding only, spec.md is authoritative on the predicate set).
 *
 * @dependencies
 * - gorm.io/gorm
 * - gorm.io/gorm/clause
 */

package storage

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bankai-project/backend/internal/domain"
)

func recToRow(r domain.Recommendation) RecLatestRow {
	return RecLatestRow{
		MarketID:        r.MarketID,
		AsOf:            r.AsOf,
		RecommendedSide: r.RecommendedSide,
		EntryPrice:      decimalFromFloat(r.EntryPrice),
		ExpectedPayout:  decimalFromFloat(r.ExpectedPayout),
		MaxPositionPct:  decimalFromFloat(r.MaxPositionPct),
		RiskScore:       decimalFromFloat(r.RiskScore),
		RiskFlags:       riskFlagsJSON(r.RiskFlags),
		Notes:           r.Notes,
	}
}

func rowToRec(r RecLatestRow) domain.Recommendation {
	entryPrice, _ := r.EntryPrice.Float64()
	expectedPayout, _ := r.ExpectedPayout.Float64()
	maxPositionPct, _ := r.MaxPositionPct.Float64()
	riskScore, _ := r.RiskScore.Float64()

	return domain.Recommendation{
		MarketID:        r.MarketID,
		AsOf:            r.AsOf,
		RecommendedSide: r.RecommendedSide,
		EntryPrice:      entryPrice,
		ExpectedPayout:  expectedPayout,
		MaxPositionPct:  maxPositionPct,
		RiskScore:       riskScore,
		RiskFlags:       []domain.RiskFlag(r.RiskFlags),
		Notes:           r.Notes,
	}
}

// UpsertRec overwrites the latest recommendation row for a market.
func UpsertRec(db *gorm.DB, r domain.Recommendation) error {
	row := recToRow(r)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "market_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"as_of", "recommended_side", "entry_price", "expected_payout", "max_position_pct", "risk_score", "risk_flags", "notes", "updated_at"}),
	}).Create(&row).Error
}

// UpsertRecsBatch overwrites many latest-recommendation rows transactionally.
func UpsertRecsBatch(db *gorm.DB, recs []domain.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	rows := make([]RecLatestRow, len(recs))
	for i, r := range recs {
		rows[i] = recToRow(r)
	}
	return withPgRetry(func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "market_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"as_of", "recommended_side", "entry_price", "expected_payout", "max_position_pct", "risk_score", "risk_flags", "notes", "updated_at"}),
			}).CreateInBatches(&rows, 100).Error
		})
	})
}

// GetRec fetches the latest recommendation for one market.
func GetRec(db *gorm.DB, marketID string) (domain.Recommendation, error) {
	var row RecLatestRow
	if err := db.First(&row, "market_id = ?", marketID).Error; err != nil {
		return domain.Recommendation{}, err
	}
	return rowToRec(row), nil
}

// RecFilter holds the optional ListRecs/CountRecs predicates.
type RecFilter struct {
	MinScore         *float64
	MaxTRemainingSec *int64
	MaxRiskScore     *float64
	HasFlags         *bool
}

func (f RecFilter) apply(q *gorm.DB) *gorm.DB {
	q = q.Joins("JOIN scores_latest ON scores_latest.market_id = recs_latest.market_id")
	if f.MinScore != nil {
		q = q.Where("scores_latest.overall_score >= ?", *f.MinScore)
	}
	if f.MaxTRemainingSec != nil {
		q = q.Where("scores_latest.t_remaining_sec <= ?", *f.MaxTRemainingSec)
	}
	if f.MaxRiskScore != nil {
		q = q.Where("recs_latest.risk_score <= ?", *f.MaxRiskScore)
	}
	if f.HasFlags != nil {
		if *f.HasFlags {
			q = q.Where("recs_latest.risk_flags != '[]'")
		} else {
			q = q.Where("recs_latest.risk_flags = '[]' OR recs_latest.risk_flags IS NULL")
		}
	}
	return q
}

// ListRecs returns recommendations joined to their current score, ordered
// by overall_score descending, filtered per RecFilter, paged by
// limit/offset.
func ListRecs(db *gorm.DB, filter RecFilter, limit, offset int) ([]domain.Recommendation, error) {
	q := filter.apply(db.Model(&RecLatestRow{}))

	var rows []RecLatestRow
	err := q.Select("recs_latest.*").
		Order("scores_latest.overall_score DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	recs := make([]domain.Recommendation, len(rows))
	for i, r := range rows {
		recs[i] = rowToRec(r)
	}
	return recs, nil
}

// CountRecs returns the total row count matching filter, ignoring paging.
func CountRecs(db *gorm.DB, filter RecFilter) (int64, error) {
	var count int64
	q := filter.apply(db.Model(&RecLatestRow{}))
	err := q.Count(&count).Error
	return count, err
}
