package paylatefees

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	msgNoLateFees = "No late fees to pay."
)

// State is what Decide needs to know. Book is nil if the book does not exist.
type State struct {
	Fee  core.FeeAssessment
	Book *catalog.Book
}

// PaymentRequest is the charge to send to the payment gateway.
type PaymentRequest struct {
	PatronID    catalog.PatronID
	Amount      decimal.Decimal
	Description string
}

// Decide determines whether there is a fee to charge.
//
// Business Rules:
//
//	GIVEN: A patron with a valid library card whose latest loan of an existing book is overdue
//	WHEN: PayLateFees command is received
//	THEN: The assessed fee is charged with the description "Late fees for '<title>'"
//	ERROR: "Invalid patron ID. Must be exactly 6 digits." if the card number is malformed
//	ERROR: "No late fees to pay." if the assessed fee is zero
//	ERROR: "Book not found." if the book does not exist
func Decide(s State, command Command) core.DecisionResult[PaymentRequest] {
	if !core.ValidatePatronID(command.PatronID) {
		return core.RejectDecision[PaymentRequest](core.OutcomeValidationError, core.MsgInvalidPatronID)
	}

	if !s.Fee.HasFee() {
		return core.RejectDecision[PaymentRequest](core.OutcomeBusinessRuleViolation, msgNoLateFees)
	}

	if s.Book == nil {
		return core.RejectDecision[PaymentRequest](core.OutcomeNotFound, core.MsgBookNotFound)
	}

	return core.AcceptDecision(PaymentRequest{
		PatronID:    command.PatronID,
		Amount:      s.Fee.FeeAmount,
		Description: fmt.Sprintf("Late fees for '%s'", s.Book.Title),
	})
}

// ResultFor turns the gateway response into the outcome reported to the patron.
func ResultFor(response core.GatewayResponse) core.Result {
	if !response.Approved {
		return core.Reject(core.OutcomeGatewayDecline, "Payment failed: "+response.Message)
	}

	return core.SuccessWithTransaction("Payment successful! "+response.Message, response.TransactionID)
}
