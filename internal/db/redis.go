/**
 * @description
 * Redis connection manager using go-redis. Only cmd/backfill wires this
 * up today: the always-on ingestd/scoringd/apid processes have no
 * caching need spec.md asks for, but cmd/backfill's smoke-test bring-up
 * keeps the teacher's connect-and-ping pattern exercised against a real
 * (if in-memory) Redis instance.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9
 */

package db

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/bankai-project/backend/internal/logger"
)

// ConnectRedis opens a client against addr and verifies it with a Ping.
func ConnectRedis(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	logger.Info("db: connected to Redis at %s", addr)
	return client, nil
}

