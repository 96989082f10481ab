package latefee

import (
	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

// Project assesses the fee of record at query.At. A nil record means the patron never borrowed the book.
func Project(record *catalog.BorrowRecord, query Query) LateFee {
	assessment := core.AssessLateFee(record, query.At)

	return LateFee{
		FeeAmount:   assessment.FeeAmount,
		DaysOverdue: assessment.DaysOverdue,
		Status:      assessment.Status,
	}
}
