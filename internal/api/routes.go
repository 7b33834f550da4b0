/**
 * @description
 * API route definitions for the read-only opportunity-scoring surface.
 * Narrowed from the teacher's internal/api/routes.go to the 3 endpoints
 * spec.md §6 names: /health, /v1/opportunities, /v1/market/:market_id.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2 + cors/recover/logger middleware
 * - gorm.io/gorm
 */

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/bankai-project/backend/internal/api/handlers"
	"github.com/bankai-project/backend/internal/config"
)

// SetupRoutes wires middleware and the read-only v1 route group.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	healthHandler := handlers.NewHealthHandler(db)
	opportunitiesHandler := handlers.NewOpportunitiesHandler(db, cfg.API)
	marketHandler := handlers.NewMarketHandler(db)

	app.Get("/health", healthHandler.Check)

	v1 := app.Group("/v1")
	v1.Get("/opportunities", opportunitiesHandler.List)
	v1.Get("/market/:market_id", marketHandler.Get)
}
