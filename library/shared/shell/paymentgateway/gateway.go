package paymentgateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

// Gateway answers messages.
const (
	MsgPaymentApproved       = "Payment processed successfully"
	MsgAmountExceedsLimit    = "Payment declined: amount exceeds limit"
	MsgInvalidAmount         = "Invalid amount: must be greater than 0"
	MsgInvalidPatronID       = "Invalid patron ID format"
	MsgInvalidTransactionID  = "Invalid transaction ID"
	MsgInvalidRefundAmount   = "Invalid refund amount"
	MsgTransactionNotFound   = "Transaction not found"
	MsgAlreadyRefunded       = "Transaction already refunded"
	MsgRefundExceedsPayment  = "Refund amount exceeds original payment"
	refundApprovedMsgPattern = "Refund of %s processed successfully. Refund ID: %s"
	refundIDPrefix           = "refund_"
)

// Ledger entry kinds.
const (
	KindPayment = "payment"
	KindRefund  = "refund"
)

const (
	logMsgPaymentAnswered = "payment gateway answered payment"
	logMsgRefundAnswered  = "payment gateway answered refund"
	logMsgTransportFault  = "payment gateway unreachable"
	logAttrApproved       = "approved"
	logAttrTransactionID  = "transaction_id"
	logAttrAmount         = "amount"
	logAttrMessage        = "message"
	logAttrError          = "error"
)

// DefaultApprovalLimit is the largest payment approved without a WithApprovalLimit option.
var DefaultApprovalLimit = decimal.RequireFromString("1000.00")

// ErrNonPositiveApprovalLimit is returned by NewGateway for an approval limit of zero or less.
var ErrNonPositiveApprovalLimit = errors.New("approval limit must be greater than 0")

// LedgerEntry records one answered request, approved or not.
type LedgerEntry struct {
	Kind          string          `json:"kind"`
	TransactionID string          `json:"transaction_id"`
	PatronID      string          `json:"patron_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Approved      bool            `json:"approved"`
	Message       string          `json:"message"`
	At            time.Time       `json:"at"`
}

type payment struct {
	amount   decimal.Decimal
	refunded bool
}

// Gateway is a simulated payment gateway. It is safe for concurrent use.
type Gateway struct {
	mu            sync.Mutex
	approvalLimit decimal.Decimal
	payments      map[string]*payment
	ledger        []LedgerEntry
	transportErr  error
	newID         func() string
	now           func() time.Time

	logger           catalog.Logger
	contextualLogger catalog.ContextualLogger
}

// NewGateway creates a Gateway that approves payments up to DefaultApprovalLimit unless configured otherwise.
func NewGateway(options ...Option) (*Gateway, error) {
	g := &Gateway{
		approvalLimit: DefaultApprovalLimit,
		payments:      make(map[string]*payment),
		newID:         func() string { return uuid.NewString() },
		now:           time.Now,
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// ProcessPayment charges amount to the patron.
// Declines are answered with Approved=false and a message; only transport faults and
// canceled contexts are returned as errors.
func (g *Gateway) ProcessPayment(
	ctx context.Context,
	patronID catalog.PatronID,
	amount decimal.Decimal,
	description string,
) (core.GatewayResponse, error) {

	if err := g.reachable(ctx, "processing payment"); err != nil {
		return core.GatewayResponse{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	response := g.decidePayment(patronID, amount)
	if response.Approved {
		g.payments[response.TransactionID] = &payment{amount: amount}
	}

	g.ledger = append(g.ledger, LedgerEntry{
		Kind:          KindPayment,
		TransactionID: response.TransactionID,
		PatronID:      patronID,
		Amount:        amount,
		Description:   description,
		Approved:      response.Approved,
		Message:       response.Message,
		At:            g.now().UTC(),
	})

	g.logInfo(ctx, logMsgPaymentAnswered,
		logAttrApproved, response.Approved,
		logAttrTransactionID, response.TransactionID,
		logAttrAmount, amount.StringFixed(2),
		logAttrMessage, response.Message,
	)

	return response, nil
}

// RefundPayment refunds up to the paid amount of a known transaction, once.
func (g *Gateway) RefundPayment(
	ctx context.Context,
	transactionID string,
	amount decimal.Decimal,
) (core.GatewayResponse, error) {

	if err := g.reachable(ctx, "processing refund"); err != nil {
		return core.GatewayResponse{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	response := g.decideRefund(transactionID, amount)
	if response.Approved {
		g.payments[transactionID].refunded = true
	}

	g.ledger = append(g.ledger, LedgerEntry{
		Kind:          KindRefund,
		TransactionID: transactionID,
		Amount:        amount,
		Approved:      response.Approved,
		Message:       response.Message,
		At:            g.now().UTC(),
	})

	g.logInfo(ctx, logMsgRefundAnswered,
		logAttrApproved, response.Approved,
		logAttrTransactionID, transactionID,
		logAttrAmount, amount.StringFixed(2),
		logAttrMessage, response.Message,
	)

	return response, nil
}

// Ledger returns a copy of all answered requests in the order they arrived.
func (g *Gateway) Ledger() []LedgerEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	ledger := make([]LedgerEntry, len(g.ledger))
	copy(ledger, g.ledger)

	return ledger
}

// LedgerJSON renders the ledger as indented JSON, amounts as decimal strings.
func (g *Gateway) LedgerJSON() ([]byte, error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(g.Ledger(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "rendering the payment ledger")
	}

	return data, nil
}

// decidePayment must be called with g.mu held.
func (g *Gateway) decidePayment(patronID catalog.PatronID, amount decimal.Decimal) core.GatewayResponse {
	switch {
	case !core.ValidatePatronID(patronID):
		return declined(MsgInvalidPatronID)
	case !amount.IsPositive():
		return declined(MsgInvalidAmount)
	case amount.GreaterThan(g.approvalLimit):
		return declined(MsgAmountExceedsLimit)
	}

	return core.GatewayResponse{
		Approved:      true,
		TransactionID: core.TransactionIDPrefix + patronID + "_" + g.newID(),
		Message:       MsgPaymentApproved,
	}
}

// decideRefund must be called with g.mu held.
func (g *Gateway) decideRefund(transactionID string, amount decimal.Decimal) core.GatewayResponse {
	if !core.ValidateTransactionID(transactionID) {
		return declined(MsgInvalidTransactionID)
	}

	if !amount.IsPositive() {
		return declined(MsgInvalidRefundAmount)
	}

	paid, known := g.payments[transactionID]
	switch {
	case !known:
		return declined(MsgTransactionNotFound)
	case paid.refunded:
		return declined(MsgAlreadyRefunded)
	case amount.GreaterThan(paid.amount):
		return declined(MsgRefundExceedsPayment)
	}

	return core.GatewayResponse{
		Approved: true,
		Message:  fmt.Sprintf(refundApprovedMsgPattern, core.FormatMoney(amount), refundIDPrefix+transactionID),
	}
}

func (g *Gateway) reachable(ctx context.Context, action string) error {
	err := ctx.Err()
	if err == nil {
		err = g.transportErr
	}

	if err == nil {
		return nil
	}

	g.logError(ctx, logMsgTransportFault, logAttrError, err.Error())

	return errors.Wrapf(err, "payment gateway unreachable while %s", action)
}

func declined(message string) core.GatewayResponse {
	return core.GatewayResponse{Approved: false, Message: message}
}

func (g *Gateway) logInfo(ctx context.Context, msg string, args ...any) {
	if g.contextualLogger != nil {
		g.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if g.logger != nil {
		g.logger.Info(msg, args...)
	}
}

func (g *Gateway) logError(ctx context.Context, msg string, args ...any) {
	if g.contextualLogger != nil {
		g.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if g.logger != nil {
		g.logger.Error(msg, args...)
	}
}
