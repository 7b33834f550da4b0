/**
 * @description
 * Rule-snapshot storage: overwritten rules_latest table and the
 * change-detection helper HasRuleChanged used by the ingest rule task.
 *
 * @dependencies
 * - gorm.io/gorm
 * - gorm.io/gorm/clause
 */

package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/logger"
)

func ruleToRow(r domain.RuleSnapshot) RuleLatestRow {
	return RuleLatestRow{
		MarketID:            r.MarketID,
		AsOf:                r.AsOf,
		RuleText:            r.RuleText,
		RuleHash:            r.RuleHash,
		SettlementSource:    r.SettlementSource,
		SettlementWindow:    r.SettlementWindow,
		DefinitionRiskScore: decimalFromFloat(r.DefinitionRiskScore),
		RiskFlags:           riskFlagsJSON(r.RiskFlags),
	}
}

func rowToRule(row RuleLatestRow) domain.RuleSnapshot {
	riskScore, _ := row.DefinitionRiskScore.Float64()
	return domain.RuleSnapshot{
		MarketID:            row.MarketID,
		AsOf:                row.AsOf,
		RuleText:            row.RuleText,
		RuleHash:            row.RuleHash,
		SettlementSource:    row.SettlementSource,
		SettlementWindow:    row.SettlementWindow,
		DefinitionRiskScore: riskScore,
		RiskFlags:           []domain.RiskFlag(row.RiskFlags),
	}
}

// UpsertRule overwrites the latest rule snapshot for a market.
func UpsertRule(db *gorm.DB, r domain.RuleSnapshot) error {
	row := ruleToRow(r)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "market_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"as_of", "rule_text", "rule_hash", "settlement_source", "settlement_window", "definition_risk_score", "risk_flags", "updated_at"}),
	}).Create(&row).Error
}

// GetRule fetches the latest rule snapshot for a market.
func GetRule(db *gorm.DB, marketID string) (domain.RuleSnapshot, error) {
	var row RuleLatestRow
	if err := db.First(&row, "market_id = ?", marketID).Error; err != nil {
		return domain.RuleSnapshot{}, err
	}
	return rowToRule(row), nil
}

// GetRulesBatch fetches the latest rule snapshot for each market ID given,
// keyed by market_id. Markets with no rule row are absent from the map.
func GetRulesBatch(db *gorm.DB, marketIDs []string) (map[string]domain.RuleSnapshot, error) {
	if len(marketIDs) == 0 {
		return map[string]domain.RuleSnapshot{}, nil
	}
	var rows []RuleLatestRow
	if err := db.Where("market_id IN ?", marketIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]domain.RuleSnapshot, len(rows))
	for _, r := range rows {
		out[r.MarketID] = rowToRule(r)
	}
	return out, nil
}

// HasRuleChanged reports whether newHash differs from the stored
// rule_hash for marketID. A storage error (including "no row yet") is
// treated as changed — the safe default is to overwrite, per spec.md §9(c).
func HasRuleChanged(db *gorm.DB, marketID, newHash string) bool {
	var row RuleLatestRow
	err := db.Select("rule_hash").First(&row, "market_id = ?", marketID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("storage: HasRuleChanged lookup failed for %s, treating as changed: %v", marketID, err)
		}
		return true
	}
	return row.RuleHash != newHash
}
