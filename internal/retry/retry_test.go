package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// Invariant 10 (spec.md §8): retry never sleeps longer than max_delay_ms * 1.15.
func TestDoBackoffCap(t *testing.T) {
	cfg := Config{
		MaxAttempts:    6,
		InitialDelayMs: 10,
		MaxDelayMs:     50,
		Jitter:         true,
	}

	var gaps []time.Duration
	last := time.Now()
	attempts := 0

	err := Do(context.Background(), cfg, func(ctx context.Context) error {
		now := time.Now()
		if attempts > 0 {
			gaps = append(gaps, now.Sub(last))
		}
		last = now
		attempts++
		return errors.New("always fails")
	})

	if err == nil {
		t.Fatalf("expected error after exhausting attempts")
	}
	if attempts != cfg.MaxAttempts {
		t.Fatalf("attempts = %d, want %d", attempts, cfg.MaxAttempts)
	}

	maxAllowed := time.Duration(float64(cfg.MaxDelayMs)*1.15) * time.Millisecond
	for i, gap := range gaps {
		if gap > maxAllowed+20*time.Millisecond { // scheduling slack
			t.Fatalf("gap[%d] = %v, want <= %v", i, gap, maxAllowed)
		}
	}
}

func TestDoSucceedsWithoutRetry(t *testing.T) {
	cfg := Config{MaxAttempts: 3, InitialDelayMs: 10, MaxDelayMs: 100, Jitter: false}
	calls := 0

	err := Do(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	cfg := Config{MaxAttempts: 5, InitialDelayMs: 1, MaxDelayMs: 5, Jitter: true}
	calls := 0

	err := Do(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{MaxAttempts: 10, InitialDelayMs: 1000, MaxDelayMs: 5000, Jitter: false}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, cfg, func(ctx context.Context) error {
		calls++
		return errors.New("always fails")
	})

	if err == nil {
		t.Fatalf("expected error from cancellation")
	}
	if calls < 1 {
		t.Fatalf("expected at least one attempt before cancellation")
	}
}
