package patronstatus

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

// Project builds the report from the patron's open loans and full history.
// It keeps the order of both lists: open loans as loaded, history newest first.
//
// Query Logic:
//
//	GIVEN: The open loans and all loans of a patron
//	WHEN: PatronStatus query is executed
//	THEN: Every open loan carries its late fee at query.At and whether it is past due
//	INCLUDES: The sum of those fees and every loan ever made, marked Borrowed or Returned
func Project(open catalog.PatronLoans, history catalog.PatronLoans, query Query) Report {
	report := Report{
		PatronID:          query.PatronID,
		CurrentlyBorrowed: make([]BorrowedBook, 0, len(open)),
		TotalLateFees:     decimal.Zero,
		BorrowingHistory:  make([]HistoryEntry, 0, len(history)),
	}

	for _, loan := range open {
		fee := core.AssessLateFee(&loan.BorrowRecord, query.At)

		report.CurrentlyBorrowed = append(report.CurrentlyBorrowed, BorrowedBook{
			BookID:     loan.BookID,
			Title:      loan.Title,
			Author:     loan.Author,
			BorrowDate: loan.BorrowDate,
			DueDate:    loan.DueDate,
			IsOverdue:  core.IsOverdue(loan.BorrowRecord, query.At),
			LateFee:    fee.FeeAmount,
		})
		report.TotalLateFees = report.TotalLateFees.Add(fee.FeeAmount)
	}

	report.TotalLateFees = report.TotalLateFees.Round(2)
	report.BooksBorrowedCount = len(report.CurrentlyBorrowed)

	for _, loan := range history {
		status := StatusReturned
		if loan.IsOpen() {
			status = StatusBorrowed
		}

		report.BorrowingHistory = append(report.BorrowingHistory, HistoryEntry{
			BookID:     loan.BookID,
			Title:      loan.Title,
			Author:     loan.Author,
			BorrowDate: loan.BorrowDate,
			DueDate:    loan.DueDate,
			ReturnDate: loan.ReturnDate,
			Status:     status,
		})
	}

	return report
}
