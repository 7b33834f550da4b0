/**
 * @description
 * GET /v1/opportunities: the ranked recommendation list, grounded on
 * original_source/crates/api/src/handlers/opportunities.rs for the clamp
 * logic and response shape, and on the teacher's GetActiveMarkets for the
 * Fiber query-param parsing and X-Total-Count convention.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - gorm.io/gorm
 */

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bankai-project/backend/internal/config"
	"github.com/bankai-project/backend/internal/storage"
)

type OpportunitiesHandler struct {
	DB  *gorm.DB
	Cfg config.APIConfig
}

func NewOpportunitiesHandler(db *gorm.DB, cfg config.APIConfig) *OpportunitiesHandler {
	return &OpportunitiesHandler{DB: db, Cfg: cfg}
}

// List returns {opportunities, total, limit, offset}.
// GET /v1/opportunities?min_score&max_t_remaining_sec&max_risk_score&has_flags&limit&offset
func (h *OpportunitiesHandler) List(c *fiber.Ctx) error {
	filter := storage.RecFilter{}

	if v := c.Query("min_score"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinScore = &f
		}
	}
	if v := c.Query("max_t_remaining_sec"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxTRemainingSec = &n
		}
	}
	if v := c.Query("max_risk_score"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxRiskScore = &f
		}
	}
	if v := c.Query("has_flags"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.HasFlags = &b
		}
	}

	limit := clampLimit(c.QueryInt("limit", h.Cfg.DefaultPageSize), h.Cfg.MaxPageSize)
	offset := clampOffset(c.QueryInt("offset", 0))

	recs, err := storage.ListRecs(h.DB, filter, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list opportunities"})
	}

	total, err := storage.CountRecs(h.DB, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to count opportunities"})
	}

	c.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return c.JSON(fiber.Map{
		"opportunities": recs,
		"total":         total,
		"limit":         limit,
		"offset":        offset,
	})
}

// clampLimit bounds a requested page size to [1, maxPageSize], per
// spec.md §6.
func clampLimit(limit, maxPageSize int) int {
	if limit < 1 {
		return 1
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// clampOffset floors a requested offset at 0.
func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
