/**
 * @description
 * discoveryTask pages through the venue's market listing on a ticker and
 * forwards each discovered market onto marketCh, one at a time.
 */

package ingest

import (
	"context"
	"time"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/logger"
	"github.com/bankai-project/backend/internal/retry"
)

func (o *Orchestrator) discoveryTask(ctx context.Context, marketCh chan<- domain.Market) {
	cadence := time.Duration(o.Config.DiscoveryCadenceSec) * time.Second
	ticker := time.NewTicker(cadence)
	defer ticker.Stop()

	o.runDiscoveryCycle(ctx, marketCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.runDiscoveryCycle(ctx, marketCh)
		}
	}
}

func (o *Orchestrator) runDiscoveryCycle(ctx context.Context, marketCh chan<- domain.Market) {
	stride := o.Config.MaxMarketsPerDiscovery
	offset := 0

	for {
		var page []domain.Market
		err := retry.Do(ctx, o.retryConfig(), func(ctx context.Context) error {
			var opErr error
			page, opErr = o.Client.DiscoverMarkets(ctx, stride, offset)
			return opErr
		})
		if err != nil {
			logger.Error("ingest: discovery page at offset %d failed after retries: %v", offset, err)
			return
		}
		if len(page) == 0 {
			return
		}

		for _, m := range page {
			select {
			case marketCh <- m:
			case <-ctx.Done():
				return
			}
		}

		offset += stride
	}
}
