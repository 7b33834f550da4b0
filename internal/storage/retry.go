/**
 * @description
 * Shared retry wrapper for batch-upsert transactions: a serialization
 * failure or deadlock under concurrent writers (two ingest writers, or an
 * ingest writer racing the scoring orchestrator) is transient and worth
 * retrying rather than surfacing, grounded on the teacher's
 * internal/services/market_service.go retry-on-conflict loop. Non-pg or
 * non-retryable errors are returned on the first attempt.
 *
 * @dependencies
 * - backend/internal/retry
 */

package storage

import (
	"context"

	"github.com/bankai-project/backend/internal/retry"
)

// batchRetryConfig mirrors spec.md §6's ingest retry defaults; storage has
// no config of its own, so batch-upsert retries reuse the same shape the
// ingest orchestrator is configured with.
var batchRetryConfig = retry.Config{
	MaxAttempts:    3,
	InitialDelayMs: 100,
	MaxDelayMs:     5000,
	Jitter:         true,
}

// withPgRetry runs op, retrying only transient Postgres conflicts
// (deadlock or serialization failure); any other error it returns
// immediately by reporting success to retry.Do and stashing the real
// error for the caller.
func withPgRetry(op func() error) error {
	var finalErr error
	_ = retry.Do(context.Background(), batchRetryConfig, func(ctx context.Context) error {
		err := op()
		finalErr = err
		if err != nil && retry.IsRetryablePgError(err) {
			return err
		}
		return nil
	})
	return finalErr
}
