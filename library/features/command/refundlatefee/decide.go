package refundlatefee

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

// RefundRequest is the refund to send to the payment gateway.
type RefundRequest struct {
	TransactionID string
	Amount        decimal.Decimal
}

// Decide checks the refund request.
//
// Business Rules:
//
//	GIVEN: A transaction ID issued by the gateway and an amount of at most the maximum late fee
//	WHEN: RefundLateFee command is received
//	THEN: The refund is sent to the gateway
//	ERROR: "Invalid transaction ID." if the ID is empty or lacks the "txn_" prefix
//	ERROR: "Refund amount must be greater than 0." if the amount is zero or negative
//	ERROR: "Refund amount exceeds maximum late fee." if the amount is above $15.00
func Decide(command Command) core.DecisionResult[RefundRequest] {
	if !core.ValidateTransactionID(command.TransactionID) {
		return core.RejectDecision[RefundRequest](core.OutcomeValidationError, core.MsgInvalidTransaction)
	}

	if !command.Amount.IsPositive() {
		return core.RejectDecision[RefundRequest](core.OutcomeValidationError, core.MsgRefundNotPositive)
	}

	if command.Amount.GreaterThan(core.MaxLateFee) {
		return core.RejectDecision[RefundRequest](core.OutcomeValidationError, core.MsgRefundExceedsMaxFee)
	}

	return core.AcceptDecision(RefundRequest{
		TransactionID: command.TransactionID,
		Amount:        command.Amount,
	})
}

// ResultFor turns the gateway response into the reported outcome.
// An approval is reported with the gateway's message as is.
func ResultFor(response core.GatewayResponse) core.Result {
	if !response.Approved {
		return core.Reject(core.OutcomeGatewayDecline, "Refund failed: "+response.Message)
	}

	return core.Success(response.Message)
}
