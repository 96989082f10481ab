package catalog

import (
	"time"
)

// BorrowRecord is one loan of a book to a patron.
// The record is open while ReturnDate is nil and closed once it is set. Records are never deleted.
type BorrowRecord struct {
	PatronID   PatronID
	BookID     BookID
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
}

// BuildBorrowRecord creates an open BorrowRecord.
func BuildBorrowRecord(patronID PatronID, bookID BookID, borrowDate time.Time, dueDate time.Time) BorrowRecord {
	return BorrowRecord{
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: ToStoredAt(borrowDate),
		DueDate:    ToStoredAt(dueDate),
	}
}

// IsOpen reports whether the loan has not been returned yet.
func (r BorrowRecord) IsOpen() bool {
	return r.ReturnDate == nil
}

// ClosedAt returns a copy of the record with its ReturnDate set.
func (r BorrowRecord) ClosedAt(returnDate time.Time) BorrowRecord {
	returned := ToStoredAt(returnDate)
	r.ReturnDate = &returned

	return r
}

// PatronLoan is a BorrowRecord joined with the title and author of the borrowed book.
type PatronLoan struct {
	BorrowRecord
	Title  string
	Author string
}

// PatronLoans is a list of PatronLoan.
type PatronLoans = []PatronLoan
