/**
 * @description
 * Generic retry-with-capped-exponential-backoff helper. Wraps any
 * context-aware operation; on failure it sleeps, doubles the delay
 * (capped), and tries again, up to Config.MaxAttempts.
 *
 * @dependencies
 * - standard "context", "math/rand", "time"
 * - backend/internal/logger
 */

package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/bankai-project/backend/internal/logger"
)

// Config mirrors spec.md §4.2 / §6's ingest retry defaults.
type Config struct {
	MaxAttempts    int
	InitialDelayMs int
	MaxDelayMs     int
	Jitter         bool
}

// Op is any fallible operation worth retrying. Transient-vs-permanent
// classification is the caller's responsibility; Do retries unconditionally
// up to the attempt cap.
type Op func(ctx context.Context) error

// Do runs op, making at most cfg.MaxAttempts attempts in total (always at
// least one, even when MaxAttempts is zero or negative). Between
// attempts it sleeps for a delay that starts at InitialDelayMs, doubles
// after every failure, and is capped at MaxDelayMs. When Jitter is set the
// actual sleep is the computed delay multiplied by a uniform factor in
// [0.85, 1.15]. Returns the last error once attempts are exhausted, or nil
// immediately on the first successful attempt.
func Do(ctx context.Context, cfg Config, op Op) error {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delayMs := cfg.InitialDelayMs
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			if attempt > 1 {
				logger.Info("retry: operation succeeded on attempt %d", attempt)
			}
			return nil
		}

		if attempt >= maxAttempts {
			break
		}

		sleep := time.Duration(delayMs) * time.Millisecond
		if cfg.Jitter {
			factor := 0.85 + rand.Float64()*0.30
			sleep = time.Duration(float64(sleep) * factor)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}

		delayMs *= 2
		if delayMs > cfg.MaxDelayMs {
			delayMs = cfg.MaxDelayMs
		}
	}

	return lastErr
}
