package paylatefees

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	msgUnableToCalculateFees = "Unable to calculate late fees."
	msgProcessingErrorPrefix = "Payment processing error: "
	actionLoadBook           = "loading the book"
)

// Store defines the catalog operations the CommandHandler needs.
type Store interface {
	FindLatestBorrowRecord(ctx context.Context, patronID catalog.PatronID, bookID catalog.BookID) (catalog.BorrowRecord, error)
	FindBookByID(ctx context.Context, bookID catalog.BookID) (catalog.Book, error)
}

// PaymentGateway charges patrons.
type PaymentGateway interface {
	ProcessPayment(
		ctx context.Context,
		patronID catalog.PatronID,
		amount decimal.Decimal,
		description string,
	) (core.GatewayResponse, error)
}

// CommandHandler runs the workflow Assess fee -> Load book -> Decide -> Charge.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store   Store
	gateway PaymentGateway
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store, gateway PaymentGateway) CommandHandler {
	return CommandHandler{
		store:   store,
		gateway: gateway,
	}
}

// Handle executes the command and reports the outcome as a core.Result.
// Nothing is persisted; the gateway keeps its own record of the charge.
func (h CommandHandler) Handle(ctx context.Context, command Command) core.Result {
	if !core.ValidatePatronID(command.PatronID) {
		return core.Reject(core.OutcomeValidationError, core.MsgInvalidPatronID)
	}

	ctx = catalog.WithStrongConsistency(ctx)

	var s State

	record, err := h.store.FindLatestBorrowRecord(ctx, command.PatronID, command.BookID)
	switch {
	case errors.Is(err, catalog.ErrBorrowRecordNotFound):
		s.Fee = core.AssessLateFee(nil, command.RequestedAt)
	case err != nil:
		return core.Fail(core.OutcomePersistenceError, msgUnableToCalculateFees, err)
	default:
		s.Fee = core.AssessLateFee(&record, command.RequestedAt)
	}

	if s.Fee.HasFee() {
		book, findErr := h.store.FindBookByID(ctx, command.BookID)
		switch {
		case findErr == nil:
			s.Book = &book
		case !errors.Is(findErr, catalog.ErrBookNotFound):
			return core.Fail(core.OutcomePersistenceError, core.DatabaseErrorMessage(actionLoadBook), findErr)
		}
	}

	decision := Decide(s, command)
	if decision.IsRejected() {
		return decision.Rejection
	}

	response, err := h.charge(ctx, decision.Change)
	if err != nil {
		return core.Fail(core.OutcomeGatewayFault, msgProcessingErrorPrefix+err.Error(), err)
	}

	return ResultFor(response)
}

// charge calls the gateway and turns a panic of the gateway client into an error.
func (h CommandHandler) charge(ctx context.Context, request PaymentRequest) (response core.GatewayResponse, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.Errorf("%v", recovered)
		}
	}()

	return h.gateway.ProcessPayment(ctx, request.PatronID, request.Amount, request.Description)
}
