/**
 * @description
 * VenueClient is the venue-agnostic capability set the ingest orchestrator
 * depends on: discover markets, poll quotes, extract rules, fetch outcomes.
 *
 * @dependencies
 * - standard "context", "errors"
 */

package venue

import (
	"context"
	"errors"

	"github.com/bankai-project/backend/internal/domain"
)

// Sentinel errors, matched via errors.Is by callers. These form the
// closed VenueClient error taxonomy named in spec.md §7.
var (
	ErrHTTP            = errors.New("venue: http request failed")
	ErrDecode          = errors.New("venue: response decode failed")
	ErrNotFound        = errors.New("venue: resource not found")
	ErrInvalidResponse = errors.New("venue: invalid response")
)

// Client is the capability abstraction over one prediction-market venue.
// The engine must not depend on any one venue's wire format; a test fake
// (internal/venue/fakevenue) satisfies this interface with fixed snapshots.
type Client interface {
	// DiscoverMarkets pages through the venue's market listing, stride
	// limit starting at offset.
	DiscoverMarkets(ctx context.Context, limit, offset int) ([]domain.Market, error)

	// GetQuotes fetches top-of-book quotes for the given market ids in one
	// call.
	GetQuotes(ctx context.Context, marketIDs []string) ([]domain.Quote, error)

	// GetRules fetches and derives the rule snapshot for one market.
	GetRules(ctx context.Context, marketID string) (domain.RuleSnapshot, error)

	// GetOutcomes fetches the settlement outcomes for one market.
	GetOutcomes(ctx context.Context, marketID string) ([]domain.Outcome, error)
}
