package handlers

import (
	"encoding/json"
	"testing"

	"github.com/bankai-project/backend/internal/domain"
)

// GET /v1/opportunities limit/offset clamp (spec.md §6): limit clamped to
// [1, max_page_size], offset floored at 0.
func TestClampLimit(t *testing.T) {
	cases := []struct {
		limit, max, want int
	}{
		{0, 100, 1},
		{-5, 100, 1},
		{20, 100, 20},
		{500, 100, 100},
		{100, 100, 100},
	}
	for _, tc := range cases {
		got := clampLimit(tc.limit, tc.max)
		if got != tc.want {
			t.Fatalf("clampLimit(%d, %d) = %d, want %d", tc.limit, tc.max, got, tc.want)
		}
	}
}

func TestClampOffset(t *testing.T) {
	if got := clampOffset(-10); got != 0 {
		t.Fatalf("clampOffset(-10) = %d, want 0", got)
	}
	if got := clampOffset(42); got != 42 {
		t.Fatalf("clampOffset(42) = %d, want 42", got)
	}
}

// GET /v1/market/:market_id (spec.md §6): each dependent section is
// omitted, not null, when absent — confirmed at the JSON-encoding
// boundary since the handler never sets Quote/Rule/Score/Recommendation
// on a failed lookup.
func TestMarketDetailResponseOmitsMissingSections(t *testing.T) {
	resp := marketDetailResponse{
		Market: domain.Market{MarketID: "mkt-1", Venue: "polymarket", Title: "Test"},
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, field := range []string{"quote", "rule", "score", "recommendation"} {
		if _, present := decoded[field]; present {
			t.Fatalf("expected %q to be omitted when absent, got %s", field, raw)
		}
	}
	if _, present := decoded["market"]; !present {
		t.Fatalf("expected market field present, got %s", raw)
	}
}

func TestMarketDetailResponseIncludesPresentSections(t *testing.T) {
	quote := domain.Quote{MarketID: "mkt-1"}
	resp := marketDetailResponse{
		Market: domain.Market{MarketID: "mkt-1"},
		Quote:  &quote,
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, present := decoded["quote"]; !present {
		t.Fatalf("expected quote field present, got %s", raw)
	}
	if _, present := decoded["rule"]; present {
		t.Fatalf("expected rule field omitted, got %s", raw)
	}
}
