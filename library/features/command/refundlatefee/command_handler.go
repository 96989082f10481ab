package refundlatefee

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	msgProcessingErrorPrefix = "Refund processing error: "
)

// PaymentGateway refunds earlier payments.
type PaymentGateway interface {
	RefundPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (core.GatewayResponse, error)
}

// CommandHandler runs the workflow Decide -> Refund. It needs no catalog data.
type CommandHandler struct {
	gateway PaymentGateway
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(gateway PaymentGateway) CommandHandler {
	return CommandHandler{gateway: gateway}
}

// Handle executes the command and reports the outcome as a core.Result.
func (h CommandHandler) Handle(ctx context.Context, command Command) core.Result {
	decision := Decide(command)
	if decision.IsRejected() {
		return decision.Rejection
	}

	response, err := h.refund(ctx, decision.Change)
	if err != nil {
		return core.Fail(core.OutcomeGatewayFault, msgProcessingErrorPrefix+err.Error(), err)
	}

	return ResultFor(response)
}

// refund calls the gateway and turns a panic of the gateway client into an error.
func (h CommandHandler) refund(ctx context.Context, request RefundRequest) (response core.GatewayResponse, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.Errorf("%v", recovered)
		}
	}()

	return h.gateway.RefundPayment(ctx, request.TransactionID, request.Amount)
}
