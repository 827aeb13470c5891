package store

import "errors"

// Sentinel errors returned by the item stores. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the requested item does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrUnsupportedOperation is returned when a store cannot serve a
	// request: a listing condition on an archive, a non-file item added to
	// an archive or an event pushed through a read-only index handle.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrUnexpectedResponse is returned when a store answers with a document
	// of an unexpected shape.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrRunAlreadyRecorded is returned when a run with the same identifier
	// is already in the ledger.
	ErrRunAlreadyRecorded = errors.New("sync run already recorded")
)

// Low-level database operation errors. These are returned (or wrapped) by
// ledger methods when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	ErrScanningRow  = errors.New("failed to scan sync run row")
	ErrScanningRows = errors.New("failed to scan sync run rows")
)
