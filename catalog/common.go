package catalog

import (
	"errors"
	"time"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")

var ErrBookNotFound = errors.New("book not found")
var ErrBorrowRecordNotFound = errors.New("borrow record not found")
var ErrDuplicateISBN = errors.New("a book with this isbn already exists")
var ErrAvailabilityOutOfRange = errors.New("available copies would leave the range [0, total copies]")
var ErrInvalidSearchField = errors.New("invalid search field")

var ErrQueryingFailed = errors.New("querying the catalog failed")
var ErrExecFailed = errors.New("writing to the catalog failed")
var ErrScanningDBRowFailed = errors.New("scanning the db row failed")
var ErrBuildingQueryFailed = errors.New("building the query failed")
var ErrGettingRowsAffectedFailed = errors.New("getting the rows affected count failed")

// BookID represents the surrogate identifier of a cataloged book.
type BookID = int64

// PatronID represents a patron identifier, six ASCII digits when valid.
type PatronID = string

// ToStoredAt normalizes an instant for storage, using UTC and microsecond precision (which Postgres keeps).
func ToStoredAt(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
