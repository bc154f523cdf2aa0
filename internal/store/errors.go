package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVaultKeyAlreadyMinted is returned when a vault key is stored for a
	// user that already has one.
	ErrVaultKeyAlreadyMinted = errors.New("vault key already minted")

	// ErrVaultKeyMismatch is returned when a vault blob write names a key
	// that is not the current key of the user.
	ErrVaultKeyMismatch = errors.New("vault key does not match")

	// ErrItemNotSaved is returned when an INSERT completes without error but
	// affects no rows.
	ErrItemNotSaved = errors.New("item was not saved")

	// ErrItemNotFound is returned when a query or update targets an item
	// (identified by id and user_id) that does not exist.
	ErrItemNotFound = errors.New("item was not found")

	// ErrUnknownKind is returned for an item kind without a table.
	ErrUnknownKind = errors.New("unknown item kind")

	// ErrUnsupportedDriver is returned by [NewConnect] for an unknown driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
