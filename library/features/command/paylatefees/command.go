package paylatefees

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	commandType = "PayLateFees"
)

// Command represents the intent of a patron to pay the late fee for a book.
type Command struct {
	PatronID    catalog.PatronID
	BookID      catalog.BookID
	RequestedAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID catalog.PatronID, bookID catalog.BookID, requestedAt time.Time) Command {
	return Command{
		PatronID:    patronID,
		BookID:      bookID,
		RequestedAt: catalog.ToStoredAt(requestedAt),
	}
}
