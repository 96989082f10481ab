package core

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Fee assessment statuses.
const (
	FeeStatusNoRecord   = "No borrow record found"
	FeeStatusNotOverdue = "Not overdue"
	FeeStatusOverdue    = "Overdue"
)

const reducedRateDays = 7

var (
	reducedDailyRate = decimal.RequireFromString("0.50")
	fullDailyRate    = decimal.RequireFromString("1.00")
)

// FeeAssessment is the late fee owed for one loan at a given instant.
type FeeAssessment struct {
	FeeAmount   decimal.Decimal
	DaysOverdue int
	Status      string
}

// AssessLateFee computes the late fee of record.
//
// A returned loan is assessed at its return date, an open loan at now. Only whole days past the
// due date count. The first seven days cost $0.50 each, every further day $1.00, and the total is
// capped at MaxLateFee. A nil record yields a zero fee with status FeeStatusNoRecord.
func AssessLateFee(record *catalog.BorrowRecord, now time.Time) FeeAssessment {
	if record == nil {
		return FeeAssessment{FeeAmount: decimal.Zero, Status: FeeStatusNoRecord}
	}

	reference := now
	if record.ReturnDate != nil {
		reference = *record.ReturnDate
	}

	daysOverdue := wholeDaysBetween(record.DueDate, reference)
	if daysOverdue <= 0 {
		return FeeAssessment{FeeAmount: decimal.Zero, Status: FeeStatusNotOverdue}
	}

	return FeeAssessment{
		FeeAmount:   LateFeeForDays(daysOverdue),
		DaysOverdue: daysOverdue,
		Status:      FeeStatusOverdue,
	}
}

// LateFeeForDays applies the tariff to a number of overdue days.
func LateFeeForDays(daysOverdue int) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}

	var fee decimal.Decimal
	if daysOverdue <= reducedRateDays {
		fee = reducedDailyRate.Mul(decimal.NewFromInt(int64(daysOverdue)))
	} else {
		fee = reducedDailyRate.Mul(decimal.NewFromInt(reducedRateDays)).
			Add(fullDailyRate.Mul(decimal.NewFromInt(int64(daysOverdue - reducedRateDays))))
	}

	if fee.GreaterThan(MaxLateFee) {
		fee = MaxLateFee
	}

	return fee.Round(2)
}

// IsOverdue reports whether an open loan is past its due date at now.
func IsOverdue(record catalog.BorrowRecord, now time.Time) bool {
	return record.IsOpen() && now.After(record.DueDate)
}

// HasFee reports whether there is anything to pay.
func (a FeeAssessment) HasFee() bool {
	return a.FeeAmount.IsPositive()
}

// wholeDaysBetween truncates toward zero, so 23 hours past the due date are no overdue day yet.
func wholeDaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
