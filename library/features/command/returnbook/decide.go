package returnbook

import (
	"fmt"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	msgNoActiveRecord = "No active borrow record found for this patron and book."
)

// State is what Decide needs to know about the book and the loan.
// Book and OpenRecord are nil if they do not exist.
type State struct {
	Book       *catalog.Book
	OpenRecord *catalog.BorrowRecord
}

// Decide determines whether the loan can be closed.
//
// Business Rules:
//
//	GIVEN: A patron with a valid library card holding an open loan of an existing book
//	WHEN: ReturnBook command is received
//	THEN: The loan is closed at the return instant and the copy becomes available
//	ERROR: "Invalid patron ID. Must be exactly 6 digits." if the card number is malformed
//	ERROR: "Book not found." if the book does not exist
//	ERROR: "No active borrow record found for this patron and book." if there is no open loan
func Decide(s State, command Command) core.DecisionResult[catalog.BorrowRecord] {
	if !core.ValidatePatronID(command.PatronID) {
		return core.RejectDecision[catalog.BorrowRecord](core.OutcomeValidationError, core.MsgInvalidPatronID)
	}

	if s.Book == nil {
		return core.RejectDecision[catalog.BorrowRecord](core.OutcomeNotFound, core.MsgBookNotFound)
	}

	if s.OpenRecord == nil {
		return core.RejectDecision[catalog.BorrowRecord](core.OutcomeBusinessRuleViolation, msgNoActiveRecord)
	}

	return core.AcceptDecision(s.OpenRecord.ClosedAt(command.ReturnedAt))
}

// SuccessMessage is reported once the loan has been closed, with the fee assessed on the closed record.
func SuccessMessage(title string, fee core.FeeAssessment) string {
	message := fmt.Sprintf("Successfully returned \"%s\".", title)

	if !fee.HasFee() {
		return message + " No late fees."
	}

	return fmt.Sprintf("%s Late fee: %s (%d days overdue).", message, core.FormatMoney(fee.FeeAmount), fee.DaysOverdue)
}
