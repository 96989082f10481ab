package patronstatus

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	queryType = "PatronStatus"
)

// Query asks for the status of a patron, with fees assessed at At.
type Query struct {
	PatronID catalog.PatronID
	At       time.Time
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(patronID catalog.PatronID, at time.Time) Query {
	return Query{
		PatronID: patronID,
		At:       catalog.ToStoredAt(at),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
