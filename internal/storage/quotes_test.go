package storage

import (
	"testing"
	"time"
)

// Invariant 9 (spec.md §8): BucketTo5m is idempotent and floors to the
// start of its containing 5-minute window.
func TestBucketTo5mIdempotent(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 12, 7, 33, 0, time.UTC)
	want := time.Date(2026, 1, 1, 12, 5, 0, 0, time.UTC)

	got := BucketTo5m(t1)
	if !got.Equal(want) {
		t.Fatalf("BucketTo5m(%v) = %v, want %v", t1, got, want)
	}

	again := BucketTo5m(got)
	if !again.Equal(got) {
		t.Fatalf("BucketTo5m not idempotent: BucketTo5m(BucketTo5m(t)) = %v, want %v", again, got)
	}
}

func TestBucketTo5mBoundary(t *testing.T) {
	onBoundary := time.Date(2026, 1, 1, 12, 5, 0, 0, time.UTC)
	got := BucketTo5m(onBoundary)
	if !got.Equal(onBoundary) {
		t.Fatalf("BucketTo5m(on-boundary) = %v, want %v", got, onBoundary)
	}
}

func TestBucketTo5mNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2026, 1, 1, 7, 7, 0, 0, loc) // 12:07 UTC
	want := time.Date(2026, 1, 1, 12, 5, 0, 0, time.UTC)

	got := BucketTo5m(local)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("BucketTo5m(%v) = %v (%v), want %v (UTC)", local, got, got.Location(), want)
	}
}
