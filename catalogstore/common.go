package catalogstore

import (
	"errors"
)

var (
	// ErrNilDatabaseConnection is returned when a nil database connection is supplied to an engine factory.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrInvalidTablePrefix is returned when a table prefix contains anything else than [a-z0-9_].
	ErrInvalidTablePrefix = errors.New("table prefix must only contain lowercase letters, digits and underscores")

	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConcurrencyConflict is returned when an update did not match the expected version.
	ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

	// ErrBuildingQueryFailed is returned when the SQL builder fails to render a statement.
	ErrBuildingQueryFailed = errors.New("building the query failed")

	// ErrQueryingFailed is returned when a read statement fails in the database.
	ErrQueryingFailed = errors.New("querying the database failed")

	// ErrScanningDBRowFailed is returned when a result row can't be scanned.
	ErrScanningDBRowFailed = errors.New("scanning the database row failed")

	// ErrWritingFailed is returned when a write statement fails in the database.
	ErrWritingFailed = errors.New("writing to the database failed")

	// ErrGettingRowsAffectedFailed is returned when the driver can't report the affected rows.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrMigrationFailed is returned when the schema can't be created.
	ErrMigrationFailed = errors.New("migrating the schema failed")
)

// VersionUint is a type alias for uint, representing the optimistic concurrency version of a record.
type VersionUint = uint

// Page describes a window into an ordered result list.
// A zero Limit means "no limit".
type Page struct {
	Limit  uint
	Offset uint
}

// FirstPage returns the first page with the given size.
func FirstPage(size uint) Page {
	return Page{Limit: size}
}

// PageNumber returns the 1-based page with the given size. Page numbers below 1 are treated as 1.
func PageNumber(number uint, size uint) Page {
	if number < 1 {
		number = 1
	}

	return Page{Limit: size, Offset: (number - 1) * size}
}
