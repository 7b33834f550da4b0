/**
 * @description
 * ruleTask refreshes settlement-rule snapshots for active markets on a
 * ticker, sending only those whose rule_hash actually changed.
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

const maxRulesPerCycle = 100

func (o *Orchestrator) ruleTask(ctx context.Context, ruleCh chan<- domain.RuleSnapshot) {
	cadence := time.Duration(o.Config.RulesRefreshCadenceSec) * time.Second
	ticker := time.NewTicker(cadence)
	defer ticker.Stop()

	o.runRuleCycle(ctx, ruleCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.runRuleCycle(ctx, ruleCh)
		}
	}
}

func (o *Orchestrator) runRuleCycle(ctx context.Context, ruleCh chan<- domain.RuleSnapshot) {
	markets, err := storage.ListActiveMarkets(o.DB, 3600, 1209600, maxRulesPerCycle)
	if err != nil {
		logger.Error("ingest: listing active markets for rule refresh failed: %v", err)
		return
	}

	for _, m := range markets {
		var rule domain.RuleSnapshot
		err := retry.Do(ctx, o.retryConfig(), func(ctx context.Context) error {
			var opErr error
			rule, opErr = o.Client.GetRules(ctx, m.MarketID)
			return opErr
		})
		if err != nil {
			logger.Error("ingest: GetRules failed for %s after retries: %v", m.MarketID, err)
			continue
		}

		if !storage.HasRuleChanged(o.DB, m.MarketID, rule.RuleHash) {
			continue
		}

		select {
		case ruleCh <- rule:
		case <-ctx.Done():
			return
		}
	}
}
