/**
 * @description
 * Quote storage: the overwritten quotes_latest table plus the append-once
 * quotes_5m history, bucketed to 5-minute windows per spec.md §4.6/§9.
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

// BucketTo5m floors t to the start of its containing 5-minute window, UTC.
// Idempotent: BucketTo5m(BucketTo5m(t)) == BucketTo5m(t) (invariant 9,
// spec.md §8).
func BucketTo5m(t time.Time) time.Time {
	t = t.UTC()
	bucketed := t.Truncate(5 * time.Minute)
	return bucketed
}

func quoteToLatestRow(q domain.Quote) QuoteLatestRow {
	return QuoteLatestRow{
		MarketID:    q.MarketID,
		AsOf:        q.AsOf,
		YesBid:      decFromFloatPtr(q.YesBid),
		YesAsk:      decFromFloatPtr(q.YesAsk),
		NoBid:       decFromFloatPtr(q.NoBid),
		NoAsk:       decFromFloatPtr(q.NoAsk),
		SpreadYes:   decFromFloatPtr(q.SpreadYes),
		SpreadNo:    decFromFloatPtr(q.SpreadNo),
		MidYes:      decFromFloatPtr(q.MidYes),
		MidNo:       decFromFloatPtr(q.MidNo),
		QuoteSource: q.QuoteSource,
	}
}

func rowToQuote(r QuoteLatestRow) domain.Quote {
	return domain.Quote{
		MarketID:    r.MarketID,
		AsOf:        r.AsOf,
		YesBid:      floatPtrFromDec(r.YesBid),
		YesAsk:      floatPtrFromDec(r.YesAsk),
		NoBid:       floatPtrFromDec(r.NoBid),
		NoAsk:       floatPtrFromDec(r.NoAsk),
		SpreadYes:   floatPtrFromDec(r.SpreadYes),
		SpreadNo:    floatPtrFromDec(r.SpreadNo),
		MidYes:      floatPtrFromDec(r.MidYes),
		MidNo:       floatPtrFromDec(r.MidNo),
		QuoteSource: r.QuoteSource,
	}
}

// UpsertQuoteLatest overwrites the latest quote row for a market.
func UpsertQuoteLatest(db *gorm.DB, q domain.Quote) error {
	row := quoteToLatestRow(q)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "market_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"as_of", "yes_bid", "yes_ask", "no_bid", "no_ask", "spread_yes", "spread_no", "mid_yes", "mid_no", "quote_source", "updated_at"}),
	}).Create(&row).Error
}

// UpsertQuotesLatestBatch overwrites many latest-quote rows transactionally.
func UpsertQuotesLatestBatch(db *gorm.DB, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	rows := make([]QuoteLatestRow, len(quotes))
	for i, q := range quotes {
		rows[i] = quoteToLatestRow(q)
	}
	return withPgRetry(func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "market_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"as_of", "yes_bid", "yes_ask", "no_bid", "no_ask", "spread_yes", "spread_no", "mid_yes", "mid_no", "quote_source", "updated_at"}),
			}).CreateInBatches(&rows, 100).Error
		})
	})
}

// GetQuoteLatest fetches the latest quote for one market.
func GetQuoteLatest(db *gorm.DB, marketID string) (domain.Quote, error) {
	var row QuoteLatestRow
	if err := db.First(&row, "market_id = ?", marketID).Error; err != nil {
		return domain.Quote{}, err
	}
	return rowToQuote(row), nil
}

// GetQuotesLatestBatch fetches the latest quote for each of the given
// market IDs, keyed by market_id. Markets with no quote row are simply
// absent from the map.
func GetQuotesLatestBatch(db *gorm.DB, marketIDs []string) (map[string]domain.Quote, error) {
	if len(marketIDs) == 0 {
		return map[string]domain.Quote{}, nil
	}
	var rows []QuoteLatestRow
	if err := db.Where("market_id IN ?", marketIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]domain.Quote, len(rows))
	for _, r := range rows {
		out[r.MarketID] = rowToQuote(r)
	}
	return out, nil
}

// InsertQuote5m appends one 5-minute bucketed history row, idempotent on
// (market_id, bucket_start): a second insert for the same bucket is a
// silent no-op.
func InsertQuote5m(db *gorm.DB, q domain.Quote) error {
	row := Quote5mRow{
		MarketID:    q.MarketID,
		BucketStart: BucketTo5m(q.AsOf),
		YesBid:      decFromFloatPtr(q.YesBid),
		YesAsk:      decFromFloatPtr(q.YesAsk),
		NoBid:       decFromFloatPtr(q.NoBid),
		NoAsk:       decFromFloatPtr(q.NoAsk),
		QuoteSource: q.QuoteSource,
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}
