package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// LoanPeriod is the time a patron may keep a borrowed copy.
	LoanPeriod = 14 * 24 * time.Hour

	// MaxOpenLoans is the number of copies a patron may hold at the same time.
	MaxOpenLoans = 5

	// TransactionIDPrefix prefixes every transaction ID the payment gateway issues.
	TransactionIDPrefix = "txn_"

	// DateLayout renders dates in user-facing messages.
	DateLayout = "2006-01-02"
)

// Messages shared by several features.
const (
	MsgInvalidPatronID = "Invalid patron ID. Must be exactly 6 digits."
	MsgBookNotFound    = "Book not found."
)

// MaxLateFee is the highest fee charged for a single loan.
var MaxLateFee = decimal.RequireFromString("15.00")

// DueDateFor returns the due date of a loan that starts at borrowedAt.
func DueDateFor(borrowedAt time.Time) time.Time {
	return borrowedAt.Add(LoanPeriod)
}

// FormatMoney renders an amount as dollars with two decimals, e.g. $3.50.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatDate renders the calendar date of t in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DatabaseErrorMessage returns the message reported when a persistence call fails while doing action,
// e.g. "Database error occurred while adding the book."
func DatabaseErrorMessage(action string) string {
	return fmt.Sprintf("Database error occurred while %s.", action)
}
