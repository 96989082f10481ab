package latefee

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Store defines the catalog operation the QueryHandler needs.
type Store interface {
	FindLatestBorrowRecord(ctx context.Context, patronID catalog.PatronID, bookID catalog.BookID) (catalog.BorrowRecord, error)
}

// QueryHandler orchestrates the query processing workflow: Load -> Project.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle assesses the fee. A missing borrow record is a regular result, not an error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LateFee, error) {
	ctx = catalog.WithEventualConsistency(ctx)

	record, err := h.store.FindLatestBorrowRecord(ctx, query.PatronID, query.BookID)
	switch {
	case errors.Is(err, catalog.ErrBorrowRecordNotFound):
		return Project(nil, query), nil
	case err != nil:
		return LateFee{}, err
	}

	return Project(&record, query), nil
}
