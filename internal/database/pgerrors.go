package database

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wafflestudio18-5/team4-server/internal/metrics"
	"github.com/wafflestudio18-5/team4-server/internal/platform/retry"
)

const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
	pgErrUniqueViolation      = "23505"
)

// classifyTxError retries serialization conflicts between concurrent
// transactions; everything else is permanent.
func classifyTxError(err error) retry.Action {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected:
			return retry.Retry
		}
	}
	return retry.Stop
}

func txRetryPolicy(operation string) retry.Policy {
	return retry.Policy{
		MaxAttempts:    3,
		InitialBackoff: 10 * time.Millisecond,
		OnRetry: func(attempt int, err error, _ time.Duration) {
			metrics.TxRetriesTotal.WithLabelValues(operation).Inc()
			slog.Warn("retrying transaction", "operation", operation, "attempt", attempt, "error", err)
		},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
