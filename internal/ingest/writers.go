/**
 * @description
 * Writer goroutines drain the three ingest channels and flush to storage
 * in batches. Each writer owns no channel (the orchestrator closes them),
 * so a writer simply returns once its channel is closed and drained.
 */

package ingest

import (
	"context"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/logger"
	"github.com/bankai-project/backend/internal/storage"
)

const marketWriteBatchSize = 100

func (o *Orchestrator) marketWriter(ctx context.Context, marketCh <-chan domain.Market) {
	batch := make([]domain.Market, 0, marketWriteBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := storage.UpsertMarketsBatch(o.DB, batch); err != nil {
			logger.Error("ingest: market batch upsert failed (%d rows): %v", len(batch), err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case m, ok := <-marketCh:
			if !ok {
				flush()
				return
			}
			batch = append(batch, m)
			if len(batch) >= marketWriteBatchSize {
				flush()
			}
		case <-ctx.Done():
			// Drain whatever is already buffered before exiting.
			for {
				select {
				case m, ok := <-marketCh:
					if !ok {
						flush()
						return
					}
					batch = append(batch, m)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (o *Orchestrator) quoteWriter(ctx context.Context, quoteBatchCh <-chan []domain.Quote) {
	for {
		select {
		case quotes, ok := <-quoteBatchCh:
			if !ok {
				return
			}
			o.writeQuoteBatch(quotes)
		case <-ctx.Done():
			for {
				select {
				case quotes, ok := <-quoteBatchCh:
					if !ok {
						return
					}
					o.writeQuoteBatch(quotes)
				default:
					return
				}
			}
		}
	}
}

func (o *Orchestrator) writeQuoteBatch(quotes []domain.Quote) {
	if err := storage.UpsertQuotesLatestBatch(o.DB, quotes); err != nil {
		logger.Error("ingest: quote batch upsert failed (%d rows): %v", len(quotes), err)
	}
	for _, q := range quotes {
		if err := storage.InsertQuote5m(o.DB, q); err != nil {
			logger.Error("ingest: quote 5m insert failed for %s: %v", q.MarketID, err)
		}
	}
}

func (o *Orchestrator) ruleWriter(ctx context.Context, ruleCh <-chan domain.RuleSnapshot) {
	for {
		select {
		case rule, ok := <-ruleCh:
			if !ok {
				return
			}
			o.writeRule(rule)
		case <-ctx.Done():
			for {
				select {
				case rule, ok := <-ruleCh:
					if !ok {
						return
					}
					o.writeRule(rule)
				default:
					return
				}
			}
		}
	}
}

func (o *Orchestrator) writeRule(rule domain.RuleSnapshot) {
	if err := storage.UpsertRule(o.DB, rule); err != nil {
		logger.Error("ingest: rule upsert failed for %s: %v", rule.MarketID, err)
	}
}
