/**
 * @description
 * /health handler: a trivial DB round-trip, mapped to a status code the
 * way original_source/crates/api/src/handlers/health.rs does.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - gorm.io/gorm
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bankai-project/backend/internal/storage"
)

type HealthHandler struct {
	DB *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Check returns 200 {status:"healthy",database:true} when the database is
// reachable, else 503 {status:"unhealthy",database:false}.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := storage.Ping(h.DB); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": false,
		})
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": true,
	})
}
