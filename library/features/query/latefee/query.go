package latefee

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	queryType = "LateFee"
)

// Query asks for the late fee of the patron's most recent loan of the book, assessed at At.
type Query struct {
	PatronID catalog.PatronID
	BookID   catalog.BookID
	At       time.Time
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(patronID catalog.PatronID, bookID catalog.BookID, at time.Time) Query {
	return Query{
		PatronID: patronID,
		BookID:   bookID,
		At:       catalog.ToStoredAt(at),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
