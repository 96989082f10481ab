package refundlatefee

import (
	"github.com/shopspring/decimal"
)

const (
	commandType = "RefundLateFee"
)

// Command represents the intent to refund a late fee payment.
type Command struct {
	TransactionID string
	Amount        decimal.Decimal
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(transactionID string, amount decimal.Decimal) Command {
	return Command{
		TransactionID: transactionID,
		Amount:        amount,
	}
}
