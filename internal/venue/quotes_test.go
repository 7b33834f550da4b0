package venue

import (
	"math"
	"testing"
	"time"
)

// Invariant 3 (spec.md §8): if (yes_bid, yes_ask) are present,
// no_bid == 1 - yes_ask and no_ask == 1 - yes_bid within 1e-12.
func TestDeriveQuoteComplementInvariant(t *testing.T) {
	yesBid := 0.60
	yesAsk := 0.65
	now := time.Now().UTC()

	q := DeriveQuote("mkt-1", &yesBid, &yesAsk, now, "test")

	if q.NoBid == nil || q.NoAsk == nil {
		t.Fatalf("expected derived NoBid/NoAsk, got nil")
	}

	wantNoBid := 1 - yesAsk
	wantNoAsk := 1 - yesBid

	if math.Abs(*q.NoBid-wantNoBid) > 1e-12 {
		t.Fatalf("NoBid = %v, want %v", *q.NoBid, wantNoBid)
	}
	if math.Abs(*q.NoAsk-wantNoAsk) > 1e-12 {
		t.Fatalf("NoAsk = %v, want %v", *q.NoAsk, wantNoAsk)
	}

	if q.SpreadYes == nil || q.MidYes == nil || q.SpreadNo == nil || q.MidNo == nil {
		t.Fatalf("expected spreads/mids populated when both sides present")
	}
}

func TestDeriveQuoteMissingSide(t *testing.T) {
	yesBid := 0.60
	now := time.Now().UTC()

	q := DeriveQuote("mkt-1", &yesBid, nil, now, "test")

	if q.NoAsk == nil {
		t.Fatalf("NoAsk should be derived from yes_bid alone, got nil")
	}
	if math.Abs(*q.NoAsk-(1-yesBid)) > 1e-12 {
		t.Fatalf("NoAsk = %v, want %v", *q.NoAsk, 1-yesBid)
	}
	if q.NoBid != nil {
		t.Fatalf("NoBid should be nil when yes_ask is absent, got %v", *q.NoBid)
	}
	if q.SpreadYes != nil || q.MidYes != nil {
		t.Fatalf("spread/mid should be nil when only one side present")
	}
}
