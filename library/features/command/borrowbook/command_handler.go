package borrowbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	actionLoadBook           = "loading the book"
	actionLoadLoans          = "loading the patron's loans"
	actionClaimCopy          = "updating book availability"
	actionInsertRecord       = "creating the borrow record"
	logMsgCompensationFailed = "giving back the claimed copy failed, availability is off by one"
	logAttrBookID            = "book_id"
	logAttrPatronID          = "patron_id"
	logAttrError             = "error"
)

// Store defines the catalog operations the CommandHandler needs.
type Store interface {
	FindBookByID(ctx context.Context, bookID catalog.BookID) (catalog.Book, error)
	FindOpenRecordsForPatron(ctx context.Context, patronID catalog.PatronID) (catalog.PatronLoans, error)
	AdjustBookAvailability(ctx context.Context, bookID catalog.BookID, delta int) error
	InsertBorrowRecord(ctx context.Context, record catalog.BorrowRecord) error
}

// CommandHandler runs the workflow Load -> Decide -> Claim copy -> Insert record.
// External wrappers handle all observability concerns; the handler only logs a failed compensation.
type CommandHandler struct {
	store            Store
	contextualLogger catalog.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithContextualLogger sets the logger that reports a copy which could not be given back.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.contextualLogger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command and reports the outcome as a core.Result.
//
// The copy is claimed with a conditional decrement first. If the borrow record cannot be written
// afterward, the copy is given back before the failure is reported.
func (h CommandHandler) Handle(ctx context.Context, command Command) core.Result {
	if !core.ValidatePatronID(command.PatronID) {
		return core.Reject(core.OutcomeValidationError, core.MsgInvalidPatronID)
	}

	ctx = catalog.WithStrongConsistency(ctx)

	s, failure := h.loadState(ctx, command)
	if failure != nil {
		return *failure
	}

	decision := Decide(s, command)
	if decision.IsRejected() {
		return decision.Rejection
	}

	if err := h.store.AdjustBookAvailability(ctx, command.BookID, -1); err != nil {
		switch {
		case errors.Is(err, catalog.ErrAvailabilityOutOfRange):
			return core.Reject(core.OutcomeBusinessRuleViolation, msgNotAvailable) // the last copy went to someone else
		case errors.Is(err, catalog.ErrBookNotFound):
			return core.Reject(core.OutcomeNotFound, core.MsgBookNotFound)
		default:
			return core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionClaimCopy), err)
		}
	}

	if err := h.store.InsertBorrowRecord(ctx, decision.Change); err != nil {
		if compensateErr := h.store.AdjustBookAvailability(ctx, command.BookID, 1); compensateErr != nil {
			h.logCompensationFailed(ctx, command, compensateErr)
			err = errors.Join(err, compensateErr)
		}

		return core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionInsertRecord), err)
	}

	return core.Success(SuccessMessage(s.Book.Title, decision.Change))
}

// loadState reads the book and, only if a copy could be lent at all, the patron's open loans.
func (h CommandHandler) loadState(ctx context.Context, command Command) (State, *core.Result) {
	var s State

	book, err := h.store.FindBookByID(ctx, command.BookID)
	switch {
	case errors.Is(err, catalog.ErrBookNotFound):
		return s, nil
	case err != nil:
		failure := core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionLoadBook), err)
		return s, &failure
	}

	s.Book = &book
	if !book.HasAvailableCopy() {
		return s, nil
	}

	loans, err := h.store.FindOpenRecordsForPatron(ctx, command.PatronID)
	if err != nil {
		failure := core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionLoadLoans), err)
		return s, &failure
	}

	s.OpenLoanCount = len(loans)

	return s, nil
}

func (h CommandHandler) logCompensationFailed(ctx context.Context, command Command, err error) {
	if h.contextualLogger == nil {
		return
	}

	h.contextualLogger.WarnContext(
		ctx,
		logMsgCompensationFailed,
		logAttrBookID, command.BookID,
		logAttrPatronID, command.PatronID,
		logAttrError, err.Error(),
	)
}
