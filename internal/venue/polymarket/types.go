/**
 * @description
 * Wire types for the subset of the Polymarket Gamma/CLOB HTTP surface
 * this venue client consumes. Mirrors the field names used by the
 * teacher's internal/polymarket/gamma package, trimmed to what spec.md
 * §4.1/§6 names.
 */

package polymarket

import "time"

// marketResponse is one element of GET /markets.
type marketResponse struct {
	ConditionID string     `json:"conditionId"`
	Question    string     `json:"question"`
	Slug        string     `json:"slug"`
	Category    *string    `json:"category"`
	Closed      bool       `json:"closed"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// marketDetailResponse is the body of GET /markets/{id}.
type marketDetailResponse struct {
	Description      *string `json:"description"`
	ResolutionSource *string `json:"resolutionSource"`
}

// orderLevel is one price level of an order-book side.
type orderLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// bookResponse is the body of GET /markets/{id}/book.
type bookResponse struct {
	Bids []orderLevel `json:"bids"`
	Asks []orderLevel `json:"asks"`
}
