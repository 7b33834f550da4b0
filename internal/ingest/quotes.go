/**
 * @description
 * quotePollTask fetches top-of-book quotes for currently active markets on
 * a ticker, sending the whole batch on quoteBatchCh as one message.
 */

package ingest

import (
	"context"
	"time"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/logger"
	"github.com/bankai-project/backend/internal/retry"
	"github.com/bankai-project/backend/internal/storage"
)

func (o *Orchestrator) quotePollTask(ctx context.Context, quoteBatchCh chan<- []domain.Quote) {
	cadence := time.Duration(o.Config.QuotesCadenceSec) * time.Second
	ticker := time.NewTicker(cadence)
	defer ticker.Stop()

	o.runQuotePollCycle(ctx, quoteBatchCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.runQuotePollCycle(ctx, quoteBatchCh)
		}
	}
}

func (o *Orchestrator) runQuotePollCycle(ctx context.Context, quoteBatchCh chan<- []domain.Quote) {
	markets, err := storage.ListActiveMarkets(o.DB, 3600, 1209600, o.Config.MaxQuotesPerFetch)
	if err != nil {
		logger.Error("ingest: listing active markets for quote poll failed: %v", err)
		return
	}
	if len(markets) == 0 {
		return
	}

	ids := make([]string, len(markets))
	for i, m := range markets {
		ids[i] = m.MarketID
	}

	var quotes []domain.Quote
	err = retry.Do(ctx, o.retryConfig(), func(ctx context.Context) error {
		var opErr error
		quotes, opErr = o.Client.GetQuotes(ctx, ids)
		return opErr
	})
	if err != nil {
		logger.Error("ingest: GetQuotes failed for %d markets after retries: %v", len(ids), err)
		return
	}
	if len(quotes) == 0 {
		return
	}

	select {
	case quoteBatchCh <- quotes:
	case <-ctx.Done():
	}
}
