package addbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	actionLookup = "checking the ISBN"
	actionInsert = "adding the book"
)

// Store defines the catalog operations the CommandHandler needs.
type Store interface {
	FindBookByISBN(ctx context.Context, isbn string) (catalog.Book, error)
	InsertBook(ctx context.Context, newBook catalog.NewBook) (catalog.Book, error)
}

// CommandHandler runs the workflow Validate -> Load -> Decide -> Insert.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the command and reports the outcome as a core.Result.
func (h CommandHandler) Handle(ctx context.Context, command Command) core.Result {
	if rejection, ok := Validate(command); !ok {
		return rejection
	}

	ctx = catalog.WithStrongConsistency(ctx)

	var s State

	_, err := h.store.FindBookByISBN(ctx, command.ISBN)
	switch {
	case err == nil:
		s.ISBNAlreadyCataloged = true
	case !errors.Is(err, catalog.ErrBookNotFound):
		return core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionLookup), err)
	}

	decision := Decide(s, command)
	if decision.IsRejected() {
		return decision.Rejection
	}

	book, err := h.store.InsertBook(ctx, decision.Change)
	if err != nil {
		// another librarian may have added the same ISBN since the lookup
		if errors.Is(err, catalog.ErrDuplicateISBN) {
			return core.Reject(core.OutcomeBusinessRuleViolation, msgDuplicateISBN)
		}

		return core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionInsert), err)
	}

	return core.Success(SuccessMessage(book.Title))
}
