package storage

import (
	"errors"
	"testing"

	"github.com/jackc/pgconn"
)

// withPgRetry retries only transient Postgres conflicts; any other error,
// including a non-retryable pgconn error, returns on the first attempt.
func TestWithPgRetryRetriesOnDeadlock(t *testing.T) {
	calls := 0
	err := withPgRetry(func() error {
		calls++
		if calls < 2 {
			return &pgconn.PgError{Code: "40P01"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestWithPgRetryDoesNotRetryNonTransientError(t *testing.T) {
	calls := 0
	wantErr := errors.New("permanent failure")
	err := withPgRetry(func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (non-retryable error must not retry)", calls)
	}
}

func TestWithPgRetryDoesNotRetryUniqueConstraintPgError(t *testing.T) {
	calls := 0
	err := withPgRetry(func() error {
		calls++
		return &pgconn.PgError{Code: "23505"}
	})
	if err == nil {
		t.Fatal("expected unique-violation error to surface")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (unique violation is not retryable)", calls)
	}
}
