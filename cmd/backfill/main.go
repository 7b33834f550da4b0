/**
 * @description
 * One-shot backfill CLI: runs a single discovery + quote + rule pass
 * against the venue client for local bring-up, printing row counts,
 * without starting any server or ticker. Grounded on the teacher's
 * cmd/sync/main.go (load config, connect DB, spin up in-memory miniredis,
 * run the sync once, count rows).
 *
 * @dependencies
 * - backend/internal/config
 * - backend/internal/storage
 * - backend/internal/venue/polymarket
 * - github.com/alicebob/miniredis/v2
 * - github.com/redis/go-redis/v9
 */

package main

import (
	"context"
	"log"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/bankai-project/backend/internal/config"
	"github.com/bankai-project/backend/internal/db"
	"github.com/bankai-project/backend/internal/domain"
	"github.com/bankai-project/backend/internal/storage"
	"github.com/bankai-project/backend/internal/venue/polymarket"
)

func main() {
	log.Println("backfill: running a single discovery + quote + rule pass...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("backfill: failed to load config: %v", err)
	}

	db, err := storage.Connect(cfg.DB.URL, cfg.LogLevel)
	if err != nil {
		log.Fatalf("backfill: failed to connect to Postgres: %v", err)
	}

	// A local miniredis instance stands in for a cache dependency during
	// this smoke-test CLI — the always-on processes have no cache layer
	// (see DESIGN.md), but this one-shot keeps the teacher's bring-up
	// pattern intact as a working example of the wired dependency.
	mr, err := miniredis.Run()
	if err != nil {
		log.Fatalf("backfill: failed to start in-memory redis: %v", err)
	}
	defer mr.Close()
	redisClient, err := db.ConnectRedis(mr.Addr())
	if err != nil {
		log.Fatalf("backfill: failed to connect to in-memory redis: %v", err)
	}
	defer redisClient.Close()

	client := polymarket.NewClient(cfg.Venue.BaseURL)
	ctx := context.Background()

	markets, err := client.DiscoverMarkets(ctx, cfg.Ingest.MaxMarketsPerDiscovery, 0)
	if err != nil {
		log.Fatalf("backfill: discovery failed: %v", err)
	}
	if err := storage.UpsertMarketsBatch(db, markets); err != nil {
		log.Fatalf("backfill: market upsert failed: %v", err)
	}
	log.Printf("backfill: discovered and stored %d markets", len(markets))

	ids := make([]string, len(markets))
	for i, m := range markets {
		ids[i] = m.MarketID
	}

	quotes, err := client.GetQuotes(ctx, ids)
	if err != nil {
		log.Fatalf("backfill: quote fetch failed: %v", err)
	}
	if err := storage.UpsertQuotesLatestBatch(db, quotes); err != nil {
		log.Fatalf("backfill: quote upsert failed: %v", err)
	}
	log.Printf("backfill: fetched and stored %d quotes", len(quotes))

	var rules []domain.RuleSnapshot
	for _, id := range ids {
		rule, err := client.GetRules(ctx, id)
		if err != nil {
			log.Printf("backfill: rule fetch failed for %s: %v", id, err)
			continue
		}
		if err := storage.UpsertRule(db, rule); err != nil {
			log.Printf("backfill: rule upsert failed for %s: %v", id, err)
			continue
		}
		rules = append(rules, rule)
	}
	log.Printf("backfill: fetched and stored %d rule snapshots", len(rules))

	log.Println("backfill: complete.")
}
