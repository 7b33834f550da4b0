/**
 * @description
 * GET /v1/market/:market_id: market detail plus whatever quote/rule/score/
 * recommendation happens to be available. Each optional section degrades
 * independently — a missing quote or rule does not fail the whole
 * response — grounded on
 * original_source/crates/api/src/handlers/market.rs, and on the teacher's
 * GetPriceHistory for the errors.Is(gorm.ErrRecordNotFound) 404 mapping.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - gorm.io/gorm
 */

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/storage"
)

type MarketHandler struct {
	DB *gorm.DB
}

func NewMarketHandler(db *gorm.DB) *MarketHandler {
	return &MarketHandler{DB: db}
}

// marketDetailResponse is the GET /v1/market/:market_id payload. Quote,
// Rule, Score, and Recommendation are each omitted (left nil) rather than
// present-but-null if their own fetch fails, per spec.md §6.
type marketDetailResponse struct {
	Market         domain.Market          `json:"market"`
	Quote          *domain.Quote          `json:"quote,omitempty"`
	Rule           *domain.RuleSnapshot   `json:"rule,omitempty"`
	Score          *domain.Score          `json:"score,omitempty"`
	Recommendation *domain.Recommendation `json:"recommendation,omitempty"`
}

// Get returns market + whatever dependent rows exist.
// GET /v1/market/:market_id
func (h *MarketHandler) Get(c *fiber.Ctx) error {
	marketID := c.Params("market_id")
	if marketID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "market_id is required"})
	}

	market, err := storage.GetMarket(h.DB, marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "market not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch market"})
	}

	resp := marketDetailResponse{Market: market}

	if quote, err := storage.GetQuoteLatest(h.DB, marketID); err == nil {
		resp.Quote = &quote
	}
	if rule, err := storage.GetRule(h.DB, marketID); err == nil {
		resp.Rule = &rule
	}
	if score, err := storage.GetScore(h.DB, marketID); err == nil {
		resp.Score = &score
	}
	if rec, err := storage.GetRec(h.DB, marketID); err == nil {
		resp.Recommendation = &rec
	}

	return c.JSON(resp)
}
