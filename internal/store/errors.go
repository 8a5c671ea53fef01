package store

import "errors"

// Sentinel errors returned by tiers and repositories. Failures that callers
// act on are additionally wrapped with the models taxonomy
// (models.ErrNotFound, models.ErrTierUnavailable, ...).
var (
	// ErrCacheMiss is returned by [CacheClient.Get] for an absent key.
	ErrCacheMiss = errors.New("cache miss")

	// ErrBackupNotFound is returned when the requested backup position is
	// past the end of the backup ring.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrUnsupported is returned for options a tier cannot honour (e.g. the
	// emergency slot of the remote tier).
	ErrUnsupported = errors.New("operation not supported by tier")

	// ErrEncodingRecord is returned when a record cannot be serialised.
	ErrEncodingRecord = errors.New("error encoding record")

	// ErrDecodingRecord is returned when a stored record cannot be parsed or
	// decrypted.
	ErrDecodingRecord = errors.New("error decoding record")

	// ErrWritingFile is returned when an atomic file write fails.
	ErrWritingFile = errors.New("error writing record file")

	// ErrReadingFile is returned when a record file cannot be read.
	ErrReadingFile = errors.New("error reading record file")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
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

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan progress row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan progress rows")

	// ErrConnectingDB is returned when a database cannot be opened or pinged.
	ErrConnectingDB = errors.New("error connecting database")
)
