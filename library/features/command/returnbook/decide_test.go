package returnbook_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const patronID = "654321"

var (
	borrowedAt = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	dueAt      = borrowedAt.Add(core.LoanPeriod)
)

func Test_Decide_Success_ClosesTheOpenRecord(t *testing.T) {
	// arrange
	book := givenBook()
	record := givenOpenRecord(book.ID)
	returnedAt := dueAt.Add(-time.Hour)

	// act
	decision := returnbook.Decide(
		returnbook.State{Book: &book, OpenRecord: &record},
		returnbook.BuildCommand(patronID, book.ID, returnedAt),
	)

	// assert
	assert.False(t, decision.IsRejected())
	assert.False(t, decision.Change.IsOpen())
	assert.Equal(t, returnedAt, *decision.Change.ReturnDate)
	assert.Equal(t, record.BorrowDate, decision.Change.BorrowDate)
}

func Test_Decide_Rejects(t *testing.T) {
	book := givenBook()
	record := givenOpenRecord(book.ID)

	testCases := []struct {
		name            string
		patronID        string
		state           returnbook.State
		expectedOutcome core.Outcome
		expectedMessage string
	}{
		{
			name:            "malformed patron ID",
			patronID:        "1234567",
			state:           returnbook.State{Book: &book, OpenRecord: &record},
			expectedOutcome: core.OutcomeValidationError,
			expectedMessage: core.MsgInvalidPatronID,
		},
		{
			name:            "book does not exist",
			patronID:        patronID,
			state:           returnbook.State{},
			expectedOutcome: core.OutcomeNotFound,
			expectedMessage: core.MsgBookNotFound,
		},
		{
			name:            "no open loan",
			patronID:        patronID,
			state:           returnbook.State{Book: &book},
			expectedOutcome: core.OutcomeBusinessRuleViolation,
			expectedMessage: "No active borrow record found for this patron and book.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			decision := returnbook.Decide(tc.state, returnbook.BuildCommand(tc.patronID, book.ID, dueAt))

			// assert
			assert.True(t, decision.IsRejected())
			assert.Equal(t, tc.expectedOutcome, decision.Rejection.Outcome)
			assert.Equal(t, tc.expectedMessage, decision.Rejection.Message)
		})
	}
}

func Test_SuccessMessage(t *testing.T) {
	testCases := []struct {
		name     string
		fee      core.FeeAssessment
		expected string
	}{
		{
			name:     "on time",
			fee:      core.FeeAssessment{FeeAmount: decimal.Zero, Status: core.FeeStatusNotOverdue},
			expected: `Successfully returned "Dune". No late fees.`,
		},
		{
			name:     "three days late",
			fee:      core.FeeAssessment{FeeAmount: decimal.RequireFromString("1.5"), DaysOverdue: 3, Status: core.FeeStatusOverdue},
			expected: `Successfully returned "Dune". Late fee: $1.50 (3 days overdue).`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, returnbook.SuccessMessage("Dune", tc.fee))
		})
	}
}

func givenBook() catalog.Book {
	return catalog.Book{
		ID:              3,
		Title:           "Dune",
		Author:          "Frank Herbert",
		ISBN:            "9780441172719",
		TotalCopies:     2,
		AvailableCopies: 1,
	}
}

func givenOpenRecord(bookID catalog.BookID) catalog.BorrowRecord {
	return catalog.BuildBorrowRecord(patronID, bookID, borrowedAt, dueAt)
}
