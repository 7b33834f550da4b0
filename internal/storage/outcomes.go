/**
 * @description
 * Outcome storage — supplemented feature (SPEC_FULL.md §3/§4.6), ported
 * from original_source/crates/storage/src/markets.rs's
 * upsert_outcomes/get_outcomes.
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

// UpsertOutcomesBatch upserts the outcome rows for one or more markets,
// keyed on (market_id, outcome).
func UpsertOutcomesBatch(db *gorm.DB, outcomes []domain.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	rows := make([]OutcomeRow, len(outcomes))
	for i, o := range outcomes {
		rows[i] = OutcomeRow{MarketID: o.MarketID, Outcome: o.Outcome, TokenID: o.TokenID}
	}
	return withPgRetry(func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "market_id"}, {Name: "outcome"}},
				DoUpdates: clause.AssignmentColumns([]string{"token_id"}),
			}).CreateInBatches(&rows, 100).Error
		})
	})
}

// GetOutcomes returns all outcomes recorded for a market.
func GetOutcomes(db *gorm.DB, marketID string) ([]domain.Outcome, error) {
	var rows []OutcomeRow
	if err := db.Where("market_id = ?", marketID).Find(&rows).Error; err != nil {
		return nil, err
	}
	outcomes := make([]domain.Outcome, len(rows))
	for i, r := range rows {
		outcomes[i] = domain.Outcome{MarketID: r.MarketID, Outcome: r.Outcome, TokenID: r.TokenID}
	}
	return outcomes, nil
}
