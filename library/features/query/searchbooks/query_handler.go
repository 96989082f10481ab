package searchbooks

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Store defines the catalog operation the QueryHandler needs.
type Store interface {
	SearchBooks(ctx context.Context, field catalog.SearchField, term string) (catalog.Books, error)
}

// QueryHandler orchestrates the query processing workflow: Search -> Project.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the search. Only store failures are returned as errors.
func (h QueryHandler) Handle(ctx context.Context, query Query) (SearchResult, error) {
	field, ok := catalog.ParseSearchField(query.Kind)
	if !ok || query.Term == "" {
		return Project(nil), nil
	}

	// searches tolerate slightly stale data
	ctx = catalog.WithEventualConsistency(ctx)

	books, err := h.store.SearchBooks(ctx, field, query.Term)
	if err != nil {
		return SearchResult{}, err
	}

	return Project(books), nil
}
