package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// mySQL server error numbers used by the classifier.
const (
	mysqlDuplicateEntry    = 1062
	mysqlLockWaitTimeout   = 1205
	mysqlDeadlock          = 1213
	mysqlTooManyConnection = 1040
)

// ErrorClassifier implements [ErrorClassificator] for every supported
// driver. PostgreSQL errors are delegated to [ClassifyPgError].
type ErrorClassifier struct{}

// NewErrorClassifier constructs an [ErrorClassifier] ready for use.
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *ErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlLockWaitTimeout, mysqlDeadlock, mysqlTooManyConnection:
			return Retryable
		}
		return NonRetryable
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
		return NonRetryable
	}

	return NonRetryable
}

// IsRetryable reports whether the operation that failed with err may succeed
// if attempted again.
func IsRetryable(err error) bool {
	return NewErrorClassifier().Classify(err) == Retryable
}

// isUniqueViolation reports whether err is a unique constraint violation on
// any supported driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
