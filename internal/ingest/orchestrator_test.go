package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bankai-project/backend/internal/config"
	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/venue/fakevenue"
)

// Scenario S6 (spec.md §8): with max_channel_size=2 and a stalled
// consumer, the producer blocks on a full channel rather than dropping
// items; once the consumer resumes, every item is delivered, in order.
func TestDiscoveryBackpressure(t *testing.T) {
	markets := make([]domain.Market, 5)
	for i := range markets {
		markets[i] = domain.Market{MarketID: strPtrVal(i), Venue: "fake"}
	}

	fake := &fakevenue.Client{Markets: markets}
	o := &Orchestrator{
		Client: fake,
		Config: config.IngestConfig{MaxMarketsPerDiscovery: 10, MaxChannelSize: 2},
	}

	marketCh := make(chan domain.Market, o.Config.MaxChannelSize)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		o.runDiscoveryCycle(ctx, marketCh)
		close(done)
	}()

	// The producer should be blocked once the 2-slot buffer fills: with
	// nobody draining, the goroutine must not finish immediately.
	select {
	case <-done:
		t.Fatal("producer finished without a consumer draining the channel; backpressure not enforced")
	case <-time.After(150 * time.Millisecond):
	}

	var received []domain.Market
	require.Eventually(t, func() bool {
		select {
		case m, ok := <-marketCh:
			if !ok {
				return true
			}
			received = append(received, m)
			return len(received) == len(markets)
		default:
			return false
		}
	}, 3*time.Second, 10*time.Millisecond, "did not receive all markets in time")

	// Drain anything left buffered after the eventually loop's last read.
	for len(received) < len(markets) {
		select {
		case m := <-marketCh:
			received = append(received, m)
		case <-time.After(time.Second):
			t.Fatalf("timed out draining remaining markets, got %d/%d", len(received), len(markets))
		}
	}

	<-done

	require.Len(t, received, len(markets))
	for i, m := range received {
		require.Equal(t, markets[i].MarketID, m.MarketID, "markets must arrive in send order")
	}
}

func strPtrVal(i int) string {
	return "mkt-" + string(rune('A'+i))
}
