/**
 * @description
 * Top-of-book-to-Quote derivation, shared by every venue implementation:
 * given a best bid/ask on the YES side, derive the NO side and the
 * spread/mid fields, per spec.md §4.1.
 *
 * @dependencies
 * - standard "time"
 */

package venue

import (
	"time"

	"github.com/bankai-project/backend/internal/domain"
)

// DeriveQuote builds a Quote from a YES-side top-of-book (either price
// may be nil if that side of the book is empty). The NO side is the
// complement of the YES side; spreads and mids are only populated when
// both endpoints of the relevant side are present (invariant 3 of
// spec.md §8).
func DeriveQuote(marketID string, yesBid, yesAsk *float64, asOf time.Time, source string) domain.Quote {
	var noBid, noAsk *float64
	if yesAsk != nil {
		v := 1.0 - *yesAsk
		noBid = &v
	}
	if yesBid != nil {
		v := 1.0 - *yesBid
		noAsk = &v
	}

	q := domain.Quote{
		MarketID:    marketID,
		AsOf:        asOf,
		YesBid:      yesBid,
		YesAsk:      yesAsk,
		NoBid:       noBid,
		NoAsk:       noAsk,
		QuoteSource: source,
	}

	if yesBid != nil && yesAsk != nil {
		spread := *yesAsk - *yesBid
		mid := (*yesBid + *yesAsk) / 2.0
		q.SpreadYes = &spread
		q.MidYes = &mid
	}
	if noBid != nil && noAsk != nil {
		spread := *noAsk - *noBid
		mid := (*noBid + *noAsk) / 2.0
		q.SpreadNo = &spread
		q.MidNo = &mid
	}

	return q
}
