package patronstatus

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// History statuses.
const (
	StatusBorrowed = "Borrowed"
	StatusReturned = "Returned"
)

// BorrowedBook is an open loan.
type BorrowedBook struct {
	BookID     catalog.BookID  `json:"book_id"`
	Title      string          `json:"title"`
	Author     string          `json:"author"`
	BorrowDate time.Time       `json:"borrow_date"`
	DueDate    time.Time       `json:"due_date"`
	IsOverdue  bool            `json:"is_overdue"`
	LateFee    decimal.Decimal `json:"late_fee"`
}

// HistoryEntry is one loan, open or returned.
type HistoryEntry struct {
	BookID     catalog.BookID `json:"book_id"`
	Title      string         `json:"title"`
	Author     string         `json:"author"`
	BorrowDate time.Time      `json:"borrow_date"`
	DueDate    time.Time      `json:"due_date"`
	ReturnDate *time.Time     `json:"return_date"`
	Status     string         `json:"status"`
}

// Report is the status of one patron.
type Report struct {
	PatronID           catalog.PatronID `json:"patron_id"`
	CurrentlyBorrowed  []BorrowedBook   `json:"currently_borrowed"`
	TotalLateFees      decimal.Decimal  `json:"total_late_fees"`
	BooksBorrowedCount int              `json:"books_borrowed_count"`
	BorrowingHistory   []HistoryEntry   `json:"borrowing_history"`
}

// IsEmpty reports whether the report was produced for a malformed patron ID.
func (r Report) IsEmpty() bool {
	return r.PatronID == ""
}
