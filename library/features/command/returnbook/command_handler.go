package returnbook

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	actionLoadBook      = "loading the book"
	actionLoadRecord    = "loading the borrow record"
	actionCloseRecord   = "updating the return date"
	actionReleaseCopy   = "updating book availability"
	logMsgReleaseFailed = "loan closed but the copy could not be made available again"
	logAttrBookID       = "book_id"
	logAttrPatronID     = "patron_id"
	logAttrError        = "error"
)

// Store defines the catalog operations the CommandHandler needs.
type Store interface {
	FindBookByID(ctx context.Context, bookID catalog.BookID) (catalog.Book, error)
	FindOpenBorrowRecord(ctx context.Context, patronID catalog.PatronID, bookID catalog.BookID) (catalog.BorrowRecord, error)
	CloseBorrowRecord(
		ctx context.Context,
		patronID catalog.PatronID,
		bookID catalog.BookID,
		returnDate time.Time,
	) (catalog.BorrowRecord, error)
	AdjustBookAvailability(ctx context.Context, bookID catalog.BookID, delta int) error
}

// CommandHandler runs the workflow Load -> Decide -> Close record -> Release copy -> Assess fee.
// External wrappers handle all observability concerns; the handler only logs a copy it could not release.
type CommandHandler struct {
	store            Store
	contextualLogger catalog.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithContextualLogger sets the logger that reports a closed loan whose copy could not be released.
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
// The record is closed with a conditional update, so a loan is never returned twice. If the copy
// cannot be released afterward, the loan stays closed and the failure is reported.
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

	closed, err := h.store.CloseBorrowRecord(ctx, command.PatronID, command.BookID, command.ReturnedAt)
	if err != nil {
		if errors.Is(err, catalog.ErrBorrowRecordNotFound) {
			return core.Reject(core.OutcomeBusinessRuleViolation, msgNoActiveRecord) // returned concurrently
		}

		return core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionCloseRecord), err)
	}

	if err = h.store.AdjustBookAvailability(ctx, command.BookID, 1); err != nil {
		h.logReleaseFailed(ctx, command, err)
		return core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionReleaseCopy), err)
	}

	return core.Success(SuccessMessage(s.Book.Title, core.AssessLateFee(&closed, command.ReturnedAt)))
}

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

	record, err := h.store.FindOpenBorrowRecord(ctx, command.PatronID, command.BookID)
	switch {
	case errors.Is(err, catalog.ErrBorrowRecordNotFound):
		return s, nil
	case err != nil:
		failure := core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionLoadRecord), err)
		return s, &failure
	}

	s.OpenRecord = &record

	return s, nil
}

func (h CommandHandler) logReleaseFailed(ctx context.Context, command Command, err error) {
	if h.contextualLogger == nil {
		return
	}

	h.contextualLogger.WarnContext(
		ctx,
		logMsgReleaseFailed,
		logAttrBookID, command.BookID,
		logAttrPatronID, command.PatronID,
		logAttrError, err.Error(),
	)
}
