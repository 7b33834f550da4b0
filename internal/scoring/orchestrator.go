/**
 * @description
 * Scoring orchestrator: periodically joins active markets to their latest
 * quotes/rules, computes scores and recommendations, and upserts both.
 * Grounded on original_source/crates/scoring/src/orchestrator.rs.
 *
 * @dependencies
 * - gorm.io/gorm
 */

package scoring

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/logger"
	"github.com/bankai-project/backend/internal/storage"
)

const maxMarketsPerCycle = 1000

// Orchestrator runs the periodic scoring cycle against one database.
type Orchestrator struct {
	DB     *gorm.DB
	Config Config
	Cadence time.Duration
}

// Run ticks every o.Cadence, running one scoring cycle per tick, until ctx
// is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.Cadence)
	defer ticker.Stop()

	logger.Info("scoring: orchestrator started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("scoring: orchestrator stopped")
			return nil
		case <-ticker.C:
			o.runCycle()
		}
	}
}

func (o *Orchestrator) runCycle() {
	now := time.Now().UTC()

	markets, err := storage.ListActiveMarkets(o.DB, o.Config.Bounds.MinTRemainingSec, o.Config.Bounds.MaxTRemainingSec, maxMarketsPerCycle)
	if err != nil {
		logger.Error("scoring: listing active markets failed: %v", err)
		return
	}
	if len(markets) == 0 {
		return
	}

	ids := make([]string, len(markets))
	for i, m := range markets {
		ids[i] = m.MarketID
	}

	quotesByID, err := storage.GetQuotesLatestBatch(o.DB, ids)
	if err != nil {
		logger.Error("scoring: fetching latest quotes failed: %v", err)
		return
	}

	rulesByID, err := storage.GetRulesBatch(o.DB, ids)
	if err != nil {
		logger.Error("scoring: fetching rule snapshots failed: %v", err)
		return
	}

	scores := ComputeScoresBatch(markets, quotesByID, rulesByID, now, o.Config)
	if len(scores) == 0 {
		return
	}

	if err := storage.UpsertScoresBatch(o.DB, scores); err != nil {
		logger.Error("scoring: score batch upsert failed: %v", err)
		return
	}

	scoresByID := make(map[string]domain.Score, len(scores))
	for _, s := range scores {
		scoresByID[s.MarketID] = s
	}

	recs := GenerateRecommendationsBatch(markets, scoresByID, quotesByID, rulesByID, o.Config)
	if len(recs) == 0 {
		return
	}

	if err := storage.UpsertRecsBatch(o.DB, recs); err != nil {
		logger.Error("scoring: recommendation batch upsert failed: %v", err)
	}
}
