package searchbooks

const (
	queryType = "SearchBooks"
)

// Query represents a catalog search for Term in the attribute named by Kind ("title", "author" or "isbn").
type Query struct {
	Term string
	Kind string
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(term, kind string) Query {
	return Query{
		Term: term,
		Kind: kind,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
