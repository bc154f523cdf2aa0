package store

import (
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification says whether a failed statement is worth running
// again.
type ErrorClassification int

const (
	// NonRetryable covers constraint violations, bad input and anything
	// unrecognised.
	NonRetryable ErrorClassification = iota

	// Retryable covers lost connections, deadlocks and serialization
	// failures.
	Retryable
)

// pgRetryable lists the SQLSTATE codes (classes 08, 40 and 57P03) after
// which the same statement may succeed.
var pgRetryable = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
}

// ClassifyPgError classifies a PostgreSQL error by its SQLSTATE code.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if _, ok := pgRetryable[pgErr.Code]; ok {
		return Retryable
	}

	return NonRetryable
}
