/**
 * @description
 * HTTP Client for the Polymarket Gamma API, adapted into this system's
 * VenueClient capability set. Fetches markets, order books, and rule
 * text; derives quotes and risk flags locally via internal/venue.
 *
 * @dependencies
 * - github.com/go-resty/resty/v2
 * - backend/internal/venue
 * - backend/internal/domain
 */

package polymarket

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/venue"
)

// Client is the Polymarket implementation of venue.Client.
type Client struct {
	http *resty.Client
}

// NewClient builds a Polymarket venue client pointed at baseURL, with the
// 30s per-request timeout spec.md §5 mandates.
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

var _ venue.Client = (*Client)(nil)

// DiscoverMarkets fetches one page of markets, mapping the Gamma wire
// shape onto domain.Market per spec.md §4.1.
func (c *Client) DiscoverMarkets(ctx context.Context, limit, offset int) ([]domain.Market, error) {
	var raw []marketResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"limit":  fmt.Sprintf("%d", limit),
			"offset": fmt.Sprintf("%d", offset),
			"active": "true",
		}).
		SetResult(&raw).
		Get("/markets")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", venue.ErrHTTP, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", venue.ErrHTTP, resp.StatusCode())
	}

	markets := make([]domain.Market, 0, len(raw))
	for _, m := range raw {
		status := domain.MarketStatusActive
		if m.Closed {
			status = domain.MarketStatusClosed
		}
		url := fmt.Sprintf("https://polymarket.com/event/%s", m.Slug)
		slug := m.Slug
		markets = append(markets, domain.Market{
			MarketID:  m.ConditionID,
			Venue:     "polymarket",
			Title:     m.Question,
			Slug:      &slug,
			Category:  m.Category,
			Status:    status,
			OpenTime:  m.StartDate,
			CloseTime: m.EndDate,
			URL:       &url,
		})
	}

	return markets, nil
}

// GetQuotes fetches the order book for each market id and derives a
// Quote via venue.DeriveQuote. A per-market fetch failure is not fatal
// to the batch: it is skipped so the rest of the batch still succeeds,
// per spec.md §4.3's "HTTP failures in producers are logged and swallowed".
func (c *Client) GetQuotes(ctx context.Context, marketIDs []string) ([]domain.Quote, error) {
	now := time.Now().UTC()
	quotes := make([]domain.Quote, 0, len(marketIDs))

	for _, marketID := range marketIDs {
		var book bookResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&book).
			Get(fmt.Sprintf("/markets/%s/book", marketID))
		if err != nil || resp.StatusCode() != http.StatusOK {
			continue
		}

		var yesBid, yesAsk *float64
		if len(book.Bids) > 0 {
			p := book.Bids[0].Price
			yesBid = &p
		}
		if len(book.Asks) > 0 {
			p := book.Asks[0].Price
			yesAsk = &p
		}

		quotes = append(quotes, venue.DeriveQuote(marketID, yesBid, yesAsk, now, "polymarket"))
	}

	return quotes, nil
}

// GetRules fetches the market detail document and derives the rule
// snapshot (hash, flags, definition risk score) locally per spec.md §4.1.
func (c *Client) GetRules(ctx context.Context, marketID string) (domain.RuleSnapshot, error) {
	var detail marketDetailResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&detail).
		Get(fmt.Sprintf("/markets/%s", marketID))
	if err != nil {
		return domain.RuleSnapshot{}, fmt.Errorf("%w: %v", venue.ErrHTTP, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return domain.RuleSnapshot{}, fmt.Errorf("%w: market %s", venue.ErrNotFound, marketID)
	}
	if resp.StatusCode() != http.StatusOK {
		return domain.RuleSnapshot{}, fmt.Errorf("%w: status %d", venue.ErrHTTP, resp.StatusCode())
	}

	ruleText := "No rules provided"
	if detail.Description != nil {
		ruleText = *detail.Description
	}

	hash := venue.ComputeRuleHash(ruleText)
	flags := venue.ExtractRiskFlags(ruleText)
	riskScore := venue.CalculateRiskScore(flags)

	return domain.RuleSnapshot{
		MarketID:            marketID,
		AsOf:                time.Now().UTC(),
		RuleText:            ruleText,
		RuleHash:            hash,
		SettlementSource:    detail.ResolutionSource,
		DefinitionRiskScore: riskScore,
		RiskFlags:           flags,
	}, nil
}

// GetOutcomes returns the synthetic YES/NO outcomes for a binary market,
// matching the original implementation's behavior — this venue only
// models binary markets.
func (c *Client) GetOutcomes(ctx context.Context, marketID string) ([]domain.Outcome, error) {
	var detail marketDetailResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&detail).
		Get(fmt.Sprintf("/markets/%s", marketID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", venue.ErrHTTP, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", venue.ErrHTTP, resp.StatusCode())
	}

	return []domain.Outcome{
		{MarketID: marketID, Outcome: "YES"},
		{MarketID: marketID, Outcome: "NO"},
	}, nil
}
