/**
 * @description
 * Market storage contract: upsert and read access over the `markets`
 * table. Batch upserts follow the teacher's
 * internal/services/market_service.go idiom (single transaction,
 * clause.OnConflict DoUpdates, CreateInBatches).
 *
 * @dependencies
 * - gorm.io/gorm
 * - gorm.io/gorm/clause
 */

package storage

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bankai-project/backend/internal/domain"
)

func marketToRow(m domain.Market) MarketRow {
	return MarketRow{
		MarketID:     m.MarketID,
		Venue:        m.Venue,
		Title:        m.Title,
		Slug:         m.Slug,
		Category:     m.Category,
		Status:       string(m.Status),
		OpenTime:     m.OpenTime,
		CloseTime:    m.CloseTime,
		ResolvedTime: m.ResolvedTime,
		URL:          m.URL,
	}
}

func rowToMarket(r MarketRow) domain.Market {
	return domain.Market{
		MarketID:     r.MarketID,
		Venue:        r.Venue,
		Title:        r.Title,
		Slug:         r.Slug,
		Category:     r.Category,
		Status:       domain.ParseMarketStatus(r.Status),
		OpenTime:     r.OpenTime,
		CloseTime:    r.CloseTime,
		ResolvedTime: r.ResolvedTime,
		URL:          r.URL,
	}
}

// UpsertMarket writes a single market, inserting or updating on market_id.
func UpsertMarket(db *gorm.DB, m domain.Market) error {
	row := marketToRow(m)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "market_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"venue", "title", "slug", "category", "status", "open_time", "close_time", "resolved_time", "url", "updated_at"}),
	}).Create(&row).Error
}

// UpsertMarketsBatch upserts many markets in one transaction, batched at
// 100 rows per statement per SPEC_FULL.md §4.3.
func UpsertMarketsBatch(db *gorm.DB, markets []domain.Market) error {
	if len(markets) == 0 {
		return nil
	}
	rows := make([]MarketRow, len(markets))
	for i, m := range markets {
		rows[i] = marketToRow(m)
	}
	return withPgRetry(func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "market_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"venue", "title", "slug", "category", "status", "open_time", "close_time", "resolved_time", "url", "updated_at"}),
			}).CreateInBatches(&rows, 100).Error
		})
	})
}

// GetMarket fetches one market by ID. Returns gorm.ErrRecordNotFound if absent.
func GetMarket(db *gorm.DB, marketID string) (domain.Market, error) {
	var row MarketRow
	if err := db.First(&row, "market_id = ?", marketID).Error; err != nil {
		return domain.Market{}, err
	}
	return rowToMarket(row), nil
}

// ListActiveMarkets returns active markets whose close_time falls within
// [now+minSec, now+maxSec], ordered by close_time ascending, capped at limit.
func ListActiveMarkets(db *gorm.DB, minSec, maxSec int64, limit int) ([]domain.Market, error) {
	now := time.Now().UTC()
	lo := now.Add(time.Duration(minSec) * time.Second)
	hi := now.Add(time.Duration(maxSec) * time.Second)

	var rows []MarketRow
	err := db.Where("status = ? AND close_time >= ? AND close_time <= ?", string(domain.MarketStatusActive), lo, hi).
		Order("close_time ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	markets := make([]domain.Market, len(rows))
	for i, r := range rows {
		markets[i] = rowToMarket(r)
	}
	return markets, nil
}
