package latefee

import (
	"github.com/shopspring/decimal"
)

// LateFee is the assessed fee of one loan.
type LateFee struct {
	FeeAmount   decimal.Decimal `json:"fee_amount"`
	DaysOverdue int             `json:"days_overdue"`
	Status      string          `json:"status"`
}
