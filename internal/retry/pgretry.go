/**
 * @description
 * Postgres-specific retry classification, grounded on the teacher's
 * inline retry-on-serialization-conflict loop in market_service.go.
 *
 * @dependencies
 * - github.com/jackc/pgconn
 */

package retry

import (
	"errors"

	"github.com/jackc/pgconn"
)

// retryablePgCodes are the Postgres SQLSTATE codes that indicate a
// transient conflict worth retrying rather than surfacing: 40P01 is
// deadlock_detected, 40001 is serialization_failure.
var retryablePgCodes = map[string]bool{
	"40P01": true,
	"40001": true,
}

// IsRetryablePgError reports whether err is a Postgres error whose
// SQLSTATE code indicates a transient conflict (deadlock or serialization
// failure) rather than a permanent failure.
func IsRetryablePgError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return retryablePgCodes[pgErr.Code]
	}
	return false
}
