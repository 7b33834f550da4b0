/**
 * @description
 * PostgreSQL connection manager using GORM. Handles connection pooling
 * and initialization, grounded verbatim on the teacher's
 * internal/db/postgres.go.
 *
 * @dependencies
 * - gorm.io/gorm: ORM library
 * - gorm.io/driver/postgres: Postgres driver
 */

package storage

import (
	"time"

	gormlogger "gorm.io/gorm/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bankai-project/backend/internal/logger"
)

// Connect opens a PostgreSQL connection via GORM and tunes the
// connection pool. logLevel is the app-wide LOG_LEVEL ("debug" enables
// GORM's own query logging).
func Connect(databaseURL, logLevel string) (*gorm.DB, error) {
	gormLogLevel := gormlogger.Error
	if logLevel == "debug" {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("storage: connected to PostgreSQL")
	return db, nil
}

// Ping runs a trivial round-trip against the database, used by the
// /health endpoint per spec.md §6.
func Ping(db *gorm.DB) error {
	return db.Exec("SELECT 1").Error
}
