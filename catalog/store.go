package catalog

import (
	"context"
	"time"
)

// Store is the complete set of accessor operations a catalog engine provides.
// Feature handlers depend on narrower subsets of it, declared where they are consumed.
//
// Lookups that find nothing return ErrBookNotFound or ErrBorrowRecordNotFound.
// Writes that would break an invariant return ErrDuplicateISBN, ErrAvailabilityOutOfRange,
// or ErrBorrowRecordNotFound (closing a record that is not open).
type Store interface {
	FindBookByID(ctx context.Context, bookID BookID) (Book, error)
	FindBookByISBN(ctx context.Context, isbn string) (Book, error)
	InsertBook(ctx context.Context, book NewBook) (Book, error)
	AdjustBookAvailability(ctx context.Context, bookID BookID, delta int) error
	SearchBooks(ctx context.Context, field SearchField, term string) (Books, error)

	InsertBorrowRecord(ctx context.Context, record BorrowRecord) error
	CloseBorrowRecord(ctx context.Context, patronID PatronID, bookID BookID, returnDate time.Time) (BorrowRecord, error)
	FindOpenBorrowRecord(ctx context.Context, patronID PatronID, bookID BookID) (BorrowRecord, error)
	FindLatestBorrowRecord(ctx context.Context, patronID PatronID, bookID BookID) (BorrowRecord, error)
	FindOpenRecordsForPatron(ctx context.Context, patronID PatronID) (PatronLoans, error)
	FindHistoryForPatron(ctx context.Context, patronID PatronID) (PatronLoans, error)
}
