package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent of a patron to return a borrowed copy.
type Command struct {
	PatronID   catalog.PatronID
	BookID     catalog.BookID
	ReturnedAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID catalog.PatronID, bookID catalog.BookID, returnedAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		BookID:     bookID,
		ReturnedAt: catalog.ToStoredAt(returnedAt),
	}
}
