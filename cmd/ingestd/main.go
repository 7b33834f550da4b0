/**
 * @description
 * Ingest process entry point. Loads config, connects Postgres, builds the
 * venue client, and runs the ingest orchestrator until SIGINT/SIGTERM.
 * Grounded on the teacher's cmd/worker/main.go signal-handling +
 * context.WithCancel pattern.
 *
 * @dependencies
 * - backend/internal/config
 * - backend/internal/storage
 * - backend/internal/ingest
 * - backend/internal/venue/polymarket
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bankai-project/backend/internal/config"
	"github.com/bankai-project/backend/internal/ingest"
	"github.com/bankai-project/backend/internal/logger"
	"github.com/bankai-project/backend/internal/storage"
	"github.com/bankai-project/backend/internal/venue/polymarket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("ingestd: failed to load config: %v", err)
	}
	logger.SetDebug(cfg.LogLevel)

	db, err := storage.Connect(cfg.DB.URL, cfg.LogLevel)
	if err != nil {
		logger.Fatal("ingestd: failed to connect to Postgres: %v", err)
	}

	venueClient := polymarket.NewClient(cfg.Venue.BaseURL)

	orchestrator := &ingest.Orchestrator{
		Client: venueClient,
		DB:     db,
		Config: cfg.Ingest,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- orchestrator.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("ingestd: shutdown signal received")
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			logger.Error("ingestd: orchestrator exited with error: %v", err)
		}
	}

	logger.Info("ingestd: stopped")
}
