/**
 * @description
 * Score storage: the overwritten scores_latest table, read by both the
 * scoring orchestrator (to join against quotes/rules) and by the read API
 * indirectly via recs.go's join.
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

func scoreToRow(s domain.Score) ScoreLatestRow {
	return ScoreLatestRow{
		MarketID:            s.MarketID,
		AsOf:                s.AsOf,
		TRemainingSec:       s.TRemainingSec,
		GrossYield:          decimalFromFloat(s.GrossYield),
		FeeBps:              decimalFromFloat(s.FeeBps),
		NetYield:            decimalFromFloat(s.NetYield),
		YieldVelocity:       decimalFromFloat(s.YieldVelocity),
		LiquidityScore:      decimalFromFloat(s.LiquidityScore),
		StalenessSec:        s.StalenessSec,
		StalenessPenalty:    decimalFromFloat(s.StalenessPenalty),
		DefinitionRiskScore: decimalFromFloat(s.DefinitionRiskScore),
		OverallScore:        decimalFromFloat(s.OverallScore),
		ScoreBreakdown:      scoreBreakdownJSON(s.ScoreBreakdown),
	}
}

func rowToScore(r ScoreLatestRow) domain.Score {
	grossYield, _ := r.GrossYield.Float64()
	feeBps, _ := r.FeeBps.Float64()
	netYield, _ := r.NetYield.Float64()
	yieldVelocity, _ := r.YieldVelocity.Float64()
	liquidityScore, _ := r.LiquidityScore.Float64()
	stalenessPenalty, _ := r.StalenessPenalty.Float64()
	definitionRiskScore, _ := r.DefinitionRiskScore.Float64()
	overallScore, _ := r.OverallScore.Float64()

	return domain.Score{
		MarketID:            r.MarketID,
		AsOf:                r.AsOf,
		TRemainingSec:       r.TRemainingSec,
		GrossYield:          grossYield,
		FeeBps:              feeBps,
		NetYield:            netYield,
		YieldVelocity:       yieldVelocity,
		LiquidityScore:      liquidityScore,
		StalenessSec:        r.StalenessSec,
		StalenessPenalty:    stalenessPenalty,
		DefinitionRiskScore: definitionRiskScore,
		OverallScore:        overallScore,
		ScoreBreakdown:      map[string]float64(r.ScoreBreakdown),
	}
}

// UpsertScore overwrites the latest score row for a market.
func UpsertScore(db *gorm.DB, s domain.Score) error {
	row := scoreToRow(s)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "market_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"as_of", "t_remaining_sec", "gross_yield", "fee_bps", "net_yield", "yield_velocity", "liquidity_score", "staleness_sec", "staleness_penalty", "definition_risk_score", "overall_score", "score_breakdown", "updated_at"}),
	}).Create(&row).Error
}

// UpsertScoresBatch overwrites many latest-score rows transactionally.
func UpsertScoresBatch(db *gorm.DB, scores []domain.Score) error {
	if len(scores) == 0 {
		return nil
	}
	rows := make([]ScoreLatestRow, len(scores))
	for i, s := range scores {
		rows[i] = scoreToRow(s)
	}
	return withPgRetry(func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "market_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"as_of", "t_remaining_sec", "gross_yield", "fee_bps", "net_yield", "yield_velocity", "liquidity_score", "staleness_sec", "staleness_penalty", "definition_risk_score", "overall_score", "score_breakdown", "updated_at"}),
			}).CreateInBatches(&rows, 100).Error
		})
	})
}

// GetScore fetches the latest score for one market.
func GetScore(db *gorm.DB, marketID string) (domain.Score, error) {
	var row ScoreLatestRow
	if err := db.First(&row, "market_id = ?", marketID).Error; err != nil {
		return domain.Score{}, err
	}
	return rowToScore(row), nil
}

// ListTopScores returns scores ordered by overall_score descending,
// optionally filtered to a minimum score and/or maximum time remaining.
func ListTopScores(db *gorm.DB, minScore *float64, maxTRemainingSec *int64, limit, offset int) ([]domain.Score, error) {
	q := db.Model(&ScoreLatestRow{})
	if minScore != nil {
		q = q.Where("overall_score >= ?", *minScore)
	}
	if maxTRemainingSec != nil {
		q = q.Where("t_remaining_sec <= ?", *maxTRemainingSec)
	}

	var rows []ScoreLatestRow
	if err := q.Order("overall_score DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}

	scores := make([]domain.Score, len(rows))
	for i, r := range rows {
		scores[i] = rowToScore(r)
	}
	return scores, nil
}
