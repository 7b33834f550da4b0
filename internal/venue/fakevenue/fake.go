/**
 * @description
 * In-process VenueClient test double returning fixed, caller-supplied
 * snapshots. Grounded on spec.md §9's "a test fake returns fixed
 * snapshots" design note. Used by the ingest tests so they never touch
 * the network.
 *
 * @dependencies
 * - backend/internal/domain
 * - backend/internal/venue
 */

package fakevenue

import (
	"context"
	"sync"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/venue"
)

// Client is a deterministic, in-memory venue.Client implementation for
// tests. All fields are safe for concurrent read after construction; the
// Calls counters are mutex-protected for concurrent-use tests (e.g. the
// ingest orchestrator calling DiscoverMarkets/GetQuotes/GetRules from
// separate goroutines).
type Client struct {
	mu sync.Mutex

	Markets  []domain.Market
	Quotes   []domain.Quote
	Rules    map[string]domain.RuleSnapshot
	Outcomes map[string][]domain.Outcome

	// DiscoverCalls counts invocations of DiscoverMarkets with offset 0,
	// i.e. the number of discovery cycles that have started.
	DiscoverCalls int
}

var _ venue.Client = (*Client)(nil)

// DiscoverMarkets returns Markets as a single page when offset is 0 and
// an empty page otherwise, so a paging loop terminates after one page.
func (c *Client) DiscoverMarkets(ctx context.Context, limit, offset int) ([]domain.Market, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if offset == 0 {
		c.DiscoverCalls++
		return c.Markets, nil
	}
	return nil, nil
}

// GetQuotes returns the subset of c.Quotes whose MarketID is in marketIDs.
func (c *Client) GetQuotes(ctx context.Context, marketIDs []string) ([]domain.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	wanted := make(map[string]bool, len(marketIDs))
	for _, id := range marketIDs {
		wanted[id] = true
	}

	var out []domain.Quote
	for _, q := range c.Quotes {
		if wanted[q.MarketID] {
			out = append(out, q)
		}
	}
	return out, nil
}

// GetRules returns the fixed RuleSnapshot for marketID, or ErrNotFound.
func (c *Client) GetRules(ctx context.Context, marketID string) (domain.RuleSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.Rules[marketID]
	if !ok {
		return domain.RuleSnapshot{}, venue.ErrNotFound
	}
	return r, nil
}

// GetOutcomes returns the fixed outcome list for marketID.
func (c *Client) GetOutcomes(ctx context.Context, marketID string) ([]domain.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.Outcomes[marketID], nil
}
