package borrowbook

import (
	"fmt"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	msgNotAvailable = "This book is currently not available."
)

var msgLimitReached = fmt.Sprintf("You have reached the maximum borrowing limit of %d books.", core.MaxOpenLoans)

// State is what Decide needs to know about the book and the patron.
// Book is nil if the book does not exist.
type State struct {
	Book          *catalog.Book
	OpenLoanCount int
}

// Decide determines whether the patron may borrow a copy of the book.
//
// Business Rules:
//
//	GIVEN: A patron with a valid library card and an existing book
//	WHEN: BorrowBook command is received
//	THEN: A borrow record due in 14 days is opened and one copy is claimed
//	ERROR: "Invalid patron ID. Must be exactly 6 digits." if the card number is malformed
//	ERROR: "Book not found." if the book does not exist
//	ERROR: "This book is currently not available." if no copy is available
//	ERROR: "You have reached the maximum borrowing limit of 5 books." if the patron holds five copies
func Decide(s State, command Command) core.DecisionResult[catalog.BorrowRecord] {
	if !core.ValidatePatronID(command.PatronID) {
		return core.RejectDecision[catalog.BorrowRecord](core.OutcomeValidationError, core.MsgInvalidPatronID)
	}

	if s.Book == nil {
		return core.RejectDecision[catalog.BorrowRecord](core.OutcomeNotFound, core.MsgBookNotFound)
	}

	if !s.Book.HasAvailableCopy() {
		return core.RejectDecision[catalog.BorrowRecord](core.OutcomeBusinessRuleViolation, msgNotAvailable)
	}

	if s.OpenLoanCount >= core.MaxOpenLoans {
		return core.RejectDecision[catalog.BorrowRecord](core.OutcomeBusinessRuleViolation, msgLimitReached)
	}

	return core.AcceptDecision(catalog.BuildBorrowRecord(
		command.PatronID,
		command.BookID,
		command.BorrowedAt,
		core.DueDateFor(command.BorrowedAt),
	))
}

// SuccessMessage is reported once the loan has been stored.
func SuccessMessage(title string, record catalog.BorrowRecord) string {
	return fmt.Sprintf("Successfully borrowed \"%s\". Due date: %s.", title, core.FormatDate(record.DueDate))
}
