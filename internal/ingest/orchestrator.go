/**
 * @description
 * Ingest orchestrator: discovers markets, polls quotes, refreshes rule
 * snapshots, and writes all three to storage through bounded channels.
 * Six goroutines (three producers, three writers) fan out under one
 * errgroup, grounded task-for-task on
 * original_source/crates/ingest/src/orchestrator.rs.
 *
 * @dependencies
 * - golang.org/x/sync/errgroup
 * - gorm.io/gorm
 */

package ingest

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/bankai-project/backend/internal/config"
	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/logger"
	"github.com/bankai-project/backend/internal/retry"
	"github.com/bankai-project/backend/internal/venue"
)

// Orchestrator runs the ingest pipeline against one venue client and one
// database until its context is cancelled.
type Orchestrator struct {
	Client venue.Client
	DB     *gorm.DB
	Config config.IngestConfig
}

// Run launches the three producer/writer pairs and blocks until all six
// goroutines return — either because ctx was cancelled or (for producers)
// a tick loop decided to stop. Channels are created and closed here, never
// by the goroutines that read them, so a writer never sees a panicking
// send on a channel it doesn't own (see DESIGN.md Open Question (d)).
func (o *Orchestrator) Run(ctx context.Context) error {
	marketCh := make(chan domain.Market, o.Config.MaxChannelSize)
	quoteBatchCh := make(chan []domain.Quote, o.Config.MaxChannelSize)
	ruleCh := make(chan domain.RuleSnapshot, o.Config.MaxChannelSize)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(marketCh)
		o.discoveryTask(egCtx, marketCh)
		return nil
	})
	eg.Go(func() error {
		defer close(quoteBatchCh)
		o.quotePollTask(egCtx, quoteBatchCh)
		return nil
	})
	eg.Go(func() error {
		defer close(ruleCh)
		o.ruleTask(egCtx, ruleCh)
		return nil
	})

	eg.Go(func() error {
		o.marketWriter(egCtx, marketCh)
		return nil
	})
	eg.Go(func() error {
		o.quoteWriter(egCtx, quoteBatchCh)
		return nil
	})
	eg.Go(func() error {
		o.ruleWriter(egCtx, ruleCh)
		return nil
	})

	logger.Info("ingest: orchestrator started")
	err := eg.Wait()
	logger.Info("ingest: orchestrator stopped")
	return err
}

// retryConfig adapts the process-wide config.RetryConfig into
// internal/retry's Config, the one place ingest's three producers convert
// between the two (see spec.md §6's ingest.retry defaults).
func (o *Orchestrator) retryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:    o.Config.Retry.MaxAttempts,
		InitialDelayMs: o.Config.Retry.InitialDelayMs,
		MaxDelayMs:     o.Config.Retry.MaxDelayMs,
		Jitter:         o.Config.Retry.Jitter,
	}
}
