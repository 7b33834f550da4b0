/**
 * @description
 * Batch entrypoints for the scoring engine: compute scores and
 * recommendations for many markets at once, skipping (and debug-logging)
 * any market the engine rejects rather than failing the whole batch.
 *
 * @dependencies
 * - backend/internal/domain
 * - backend/internal/logger
 */

package scoring

import (
	"time"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/logger"
)

// ComputeScoresBatch computes a Score for every market with both a quote
// and (optionally) a rule available, skipping markets the engine rejects.
func ComputeScoresBatch(markets []domain.Market, quotesByID map[string]domain.Quote, rulesByID map[string]domain.RuleSnapshot, now time.Time, cfg Config) []domain.Score {
	scores := make([]domain.Score, 0, len(markets))

	for _, m := range markets {
		quote, ok := quotesByID[m.MarketID]
		if !ok {
			logger.Debug("scoring: skipping market %s: no quote available", m.MarketID)
			continue
		}

		var rule *domain.RuleSnapshot
		if r, ok := rulesByID[m.MarketID]; ok {
			rule = &r
		}

		score, err := ComputeScore(m, quote, rule, now, cfg)
		if err != nil {
			logger.Debug("scoring: skipping market %s: %v", m.MarketID, err)
			continue
		}

		scores = append(scores, score)
	}

	return scores
}

// GenerateRecommendationsBatch generates a Recommendation for every
// market that has a computed Score and a quote.
func GenerateRecommendationsBatch(markets []domain.Market, scoresByID map[string]domain.Score, quotesByID map[string]domain.Quote, rulesByID map[string]domain.RuleSnapshot, cfg Config) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(scoresByID))

	for _, m := range markets {
		score, ok := scoresByID[m.MarketID]
		if !ok {
			continue
		}
		quote, ok := quotesByID[m.MarketID]
		if !ok {
			continue
		}

		var rule *domain.RuleSnapshot
		if r, ok := rulesByID[m.MarketID]; ok {
			rule = &r
		}

		recs = append(recs, GenerateRecommendation(m, score, quote, rule, cfg))
	}

	return recs
}
