/**
 * @description
 * Quote is a top-of-book snapshot for one market at a point in time.
 * If the YES side is present, the NO side is its complement: no_bid =
 * 1 - yes_ask, no_ask = 1 - yes_bid.
 *
 * @dependencies
 * - standard "time"
 */

package domain

import "time"

// Quote is a top-of-book price snapshot.
type Quote struct {
	MarketID string
	AsOf     time.Time

	YesBid *float64
	YesAsk *float64
	NoBid  *float64
	NoAsk  *float64

	SpreadYes *float64
	SpreadNo  *float64
	MidYes    *float64
	MidNo     *float64

	QuoteSource string
}
