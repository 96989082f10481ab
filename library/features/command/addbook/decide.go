package addbook

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const (
	msgDuplicateISBN = "A book with this ISBN already exists."
)

// State is what Decide needs to know about the catalog.
type State struct {
	ISBNAlreadyCataloged bool
}

// Validate checks the input fields and returns the first violation.
// It needs no state, so the handler calls it before touching the store.
func Validate(command Command) (core.Result, bool) {
	if msg, ok := core.ValidateTitle(command.Title); !ok {
		return core.Reject(core.OutcomeValidationError, msg), false
	}

	if msg, ok := core.ValidateAuthor(command.Author); !ok {
		return core.Reject(core.OutcomeValidationError, msg), false
	}

	if !core.ValidateISBN(command.ISBN) {
		return core.Reject(core.OutcomeValidationError, core.MsgISBNInvalid), false
	}

	if !core.ValidateTotalCopies(command.TotalCopies) {
		return core.Reject(core.OutcomeValidationError, core.MsgTotalCopiesInvalid), false
	}

	return core.Result{}, true
}

// Decide determines whether the book can be added.
//
// Business Rules:
//
//	GIVEN: A title, an author, a 13 character ISBN and a positive number of copies
//	WHEN: AddBook command is received
//	THEN: The book is inserted with trimmed title and author and all copies available
//	ERROR: the first failing field validation, in the order title, author, ISBN, copies
//	ERROR: "A book with this ISBN already exists." if the ISBN is cataloged
func Decide(s State, command Command) core.DecisionResult[catalog.NewBook] {
	if rejection, ok := Validate(command); !ok {
		return core.RejectDecision[catalog.NewBook](rejection.Outcome, rejection.Message)
	}

	if s.ISBNAlreadyCataloged {
		return core.RejectDecision[catalog.NewBook](core.OutcomeBusinessRuleViolation, msgDuplicateISBN)
	}

	return core.AcceptDecision(catalog.BuildNewBook(
		strings.TrimSpace(command.Title),
		strings.TrimSpace(command.Author),
		command.ISBN,
		command.TotalCopies,
	))
}

// SuccessMessage is reported once the book has been stored.
func SuccessMessage(title string) string {
	return fmt.Sprintf("Book \"%s\" has been successfully added to the catalog.", title)
}
