package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

// PaymentGatewayMock satisfies the gateway contracts of the payment features.
//
//	gateway := new(mocks.PaymentGatewayMock)
//	gateway.On("ProcessPayment", mock.Anything, "123456", mocks.Amount("5.50"), "Late fees for 'Dune'").
//		Return(core.GatewayResponse{Approved: true, TransactionID: "txn_123456_1"}, nil)
//
// Use PanicOnProcessPayment to simulate a gateway client that panics.
type PaymentGatewayMock struct {
	mock.Mock
	panicWith any
}

func (m *PaymentGatewayMock) ProcessPayment(
	ctx context.Context,
	patronID string,
	amount decimal.Decimal,
	description string,
) (core.GatewayResponse, error) {

	args := m.Called(ctx, patronID, amount, description)

	if m.panicWith != nil {
		panic(m.panicWith)
	}

	return args.Get(0).(core.GatewayResponse), args.Error(1)
}

func (m *PaymentGatewayMock) RefundPayment(
	ctx context.Context,
	transactionID string,
	amount decimal.Decimal,
) (core.GatewayResponse, error) {

	args := m.Called(ctx, transactionID, amount)

	return args.Get(0).(core.GatewayResponse), args.Error(1)
}

// PanicOnProcessPayment makes ProcessPayment panic with value after the call was recorded.
// The call still needs an expectation.
func (m *PaymentGatewayMock) PanicOnProcessPayment(value any) {
	m.panicWith = value
}

// Amount returns an argument matcher for a decimal amount, since decimal.Decimal values
// with the same value can differ in their internal representation.
func Amount(expected string) any {
	want := decimal.RequireFromString(expected)

	return mock.MatchedBy(func(actual decimal.Decimal) bool {
		return actual.Equal(want)
	})
}
