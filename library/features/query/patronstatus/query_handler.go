package patronstatus

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

// Store defines the catalog operations the QueryHandler needs.
type Store interface {
	FindOpenRecordsForPatron(ctx context.Context, patronID catalog.PatronID) (catalog.PatronLoans, error)
	FindHistoryForPatron(ctx context.Context, patronID catalog.PatronID) (catalog.PatronLoans, error)
}

// QueryHandler orchestrates the query processing workflow: Load -> Project.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle builds the report. A malformed patron ID yields an empty report and no error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Report, error) {
	if !core.ValidatePatronID(query.PatronID) {
		return Report{}, nil
	}

	ctx = catalog.WithEventualConsistency(ctx)

	open, err := h.store.FindOpenRecordsForPatron(ctx, query.PatronID)
	if err != nil {
		return Report{}, err
	}

	history, err := h.store.FindHistoryForPatron(ctx, query.PatronID)
	if err != nil {
		return Report{}, err
	}

	return Project(open, history, query), nil
}
