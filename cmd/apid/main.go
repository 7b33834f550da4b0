/**
 * @description
 * Read API entry point. Loads config, connects Postgres, wires the
 * read-only v1 routes, and serves until the process is killed.
 * Grounded verbatim on the teacher's cmd/api/main.go bootstrap.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/config
 * - backend/internal/storage
 * - backend/internal/api
 */

package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/bankai-project/backend/internal/api"
	"github.com/bankai-project/backend/internal/config"
	"github.com/bankai-project/backend/internal/logger"
	"github.com/bankai-project/backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("apid: failed to load config: %v", err)
	}
	logger.SetDebug(cfg.LogLevel)

	db, err := storage.Connect(cfg.DB.URL, cfg.LogLevel)
	if err != nil {
		logger.Fatal("apid: failed to connect to Postgres: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:       "pm-endgame-api",
		StrictRouting: true,
		CaseSensitive: true,
	})

	api.SetupRoutes(app, db, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.API.BindAddr, cfg.API.Port)
	logger.Info("apid: listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Fatal("apid: server exited: %v", err)
	}
}
