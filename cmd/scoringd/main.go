/**
 * @description
 * Scoring process entry point. Loads config, connects Postgres, and runs
 * the periodic scoring orchestrator until SIGINT/SIGTERM. Grounded on the
 * same cmd/worker/main.go bootstrap skeleton as cmd/ingestd, running the
 * scoring cycle in place of the websocket worker loop.
 *
 * @dependencies
 * - backend/internal/config
 * - backend/internal/storage
 * - backend/internal/scoring
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bankai-project/backend/internal/config"
	"github.com/bankai-project/backend/internal/logger"
	"github.com/bankai-project/backend/internal/scoring"
	"github.com/bankai-project/backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("scoringd: failed to load config: %v", err)
	}
	logger.SetDebug(cfg.LogLevel)

	db, err := storage.Connect(cfg.DB.URL, cfg.LogLevel)
	if err != nil {
		logger.Fatal("scoringd: failed to connect to Postgres: %v", err)
	}

	orchestrator := &scoring.Orchestrator{
		DB:      db,
		Config:  scoring.FromAppConfig(cfg.Scoring),
		Cadence: time.Duration(cfg.Scoring.CadenceSec) * time.Second,
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
		logger.Info("scoringd: shutdown signal received")
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			logger.Error("scoringd: orchestrator exited with error: %v", err)
		}
	}

	logger.Info("scoringd: stopped")
}
