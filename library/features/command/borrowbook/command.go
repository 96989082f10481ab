package borrowbook

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent of a patron to borrow a copy of a book.
type Command struct {
	PatronID   catalog.PatronID
	BookID     catalog.BookID
	BorrowedAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID catalog.PatronID, bookID catalog.BookID, borrowedAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		BookID:     bookID,
		BorrowedAt: catalog.ToStoredAt(borrowedAt),
	}
}
