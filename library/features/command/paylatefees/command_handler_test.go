package paylatefees_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/memoryengine"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/paylatefees"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/paymentgateway"
	"github.com/AntonStoeckl/library-catalog-go/testutil/mocks"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	store := newStoreWithOverdueLoan(t)
	gateway := new(mocks.PaymentGatewayMock)
	gateway.On("ProcessPayment", mock.Anything, patronID, mocks.Amount("2.50"), "Late fees for 'Emma'").
		Return(core.GatewayResponse{Approved: true, TransactionID: "txn_246810_1", Message: "Payment processed successfully"}, nil).
		Once()
	handler := paylatefees.NewCommandHandler(store, gateway)

	// act
	result := handler.Handle(ctx, paylatefees.BuildCommand(patronID, givenBook().ID, requestedAt))

	// assert
	assert.Equal(t, core.OutcomeSuccess, result.Outcome)
	assert.Equal(t, "Payment successful! Payment processed successfully", result.Message)
	assert.Equal(t, "txn_246810_1", result.TransactionID)
	gateway.AssertExpectations(t)
}

func Test_CommandHandler_Handle_Success_WithRealGateway(t *testing.T) {
	// setup
	ctx := context.Background()
	store := newStoreWithOverdueLoan(t)
	gateway, err := paymentgateway.NewGateway(paymentgateway.WithIDGenerator(func() string { return "1" }))
	require.NoError(t, err)
	handler := paylatefees.NewCommandHandler(store, gateway)

	// act
	result := handler.Handle(ctx, paylatefees.BuildCommand(patronID, givenBook().ID, requestedAt))

	// assert
	assert.True(t, result.Succeeded(), result.Message)
	assert.Contains(t, result.TransactionID, "txn_")
	require.Len(t, gateway.Ledger(), 1)
	assert.Equal(t, "Late fees for 'Emma'", gateway.Ledger()[0].Description)
}

func Test_CommandHandler_Handle_ReportsDecline(t *testing.T) {
	// setup
	ctx := context.Background()
	store := newStoreWithOverdueLoan(t)
	gateway := new(mocks.PaymentGatewayMock)
	gateway.On("ProcessPayment", mock.Anything, patronID, mocks.Amount("2.50"), mock.Anything).
		Return(core.GatewayResponse{Message: "Payment declined: amount exceeds limit"}, nil)
	handler := paylatefees.NewCommandHandler(store, gateway)

	// act
	result := handler.Handle(ctx, paylatefees.BuildCommand(patronID, givenBook().ID, requestedAt))

	// assert
	assert.Equal(t, core.OutcomeGatewayDecline, result.Outcome)
	assert.Equal(t, "Payment failed: Payment declined: amount exceeds limit", result.Message)
	assert.Empty(t, result.TransactionID)
}

func Test_CommandHandler_Handle_ContainsGatewayError(t *testing.T) {
	// setup
	ctx := context.Background()
	store := newStoreWithOverdueLoan(t)
	gateway := new(mocks.PaymentGatewayMock)
	gateway.On("ProcessPayment", mock.Anything, patronID, mock.Anything, mock.Anything).
		Return(core.GatewayResponse{}, errors.New("connection reset by peer"))
	handler := paylatefees.NewCommandHandler(store, gateway)

	// act
	result := handler.Handle(ctx, paylatefees.BuildCommand(patronID, givenBook().ID, requestedAt))

	// assert
	assert.Equal(t, core.OutcomeGatewayFault, result.Outcome)
	assert.Equal(t, "Payment processing error: connection reset by peer", result.Message)
	assert.Error(t, result.Err)
}

func Test_CommandHandler_Handle_ContainsGatewayPanic(t *testing.T) {
	// setup
	ctx := context.Background()
	store := newStoreWithOverdueLoan(t)
	gateway := new(mocks.PaymentGatewayMock)
	gateway.On("ProcessPayment", mock.Anything, patronID, mock.Anything, mock.Anything).Once()
	gateway.PanicOnProcessPayment("gateway client crashed")
	handler := paylatefees.NewCommandHandler(store, gateway)

	// act
	var result core.Result
	assert.NotPanics(t, func() {
		result = handler.Handle(ctx, paylatefees.BuildCommand(patronID, givenBook().ID, requestedAt))
	})

	// assert
	assert.Equal(t, core.OutcomeGatewayFault, result.Outcome)
	assert.Equal(t, "Payment processing error: gateway client crashed", result.Message)
	gateway.AssertExpectations(t)
}

func Test_CommandHandler_Handle_Rejects_WithoutCallingTheGateway(t *testing.T) {
	testCases := []struct {
		name            string
		patronID        string
		bookID          catalog.BookID
		expectedOutcome core.Outcome
		expectedMessage string
	}{
		{
			name:            "malformed patron ID",
			patronID:        "24681",
			bookID:          givenBook().ID,
			expectedOutcome: core.OutcomeValidationError,
			expectedMessage: core.MsgInvalidPatronID,
		},
		{
			name:            "patron never borrowed the book",
			patronID:        "999999",
			bookID:          givenBook().ID,
			expectedOutcome: core.OutcomeBusinessRuleViolation,
			expectedMessage: "No late fees to pay.",
		},
		{
			name:            "unknown book has no borrow record either",
			patronID:        patronID,
			bookID:          404,
			expectedOutcome: core.OutcomeBusinessRuleViolation,
			expectedMessage: "No late fees to pay.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			ctx := context.Background()
			store := newStoreWithOverdueLoan(t)
			gateway := new(mocks.PaymentGatewayMock)
			handler := paylatefees.NewCommandHandler(store, gateway)

			// act
			result := handler.Handle(ctx, paylatefees.BuildCommand(tc.patronID, tc.bookID, requestedAt))

			// assert
			assert.Equal(t, tc.expectedOutcome, result.Outcome)
			assert.Equal(t, tc.expectedMessage, result.Message)
			gateway.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func Test_CommandHandler_Handle_Rejects_WhenNotOverdue(t *testing.T) {
	// setup
	ctx := context.Background()
	store := newStoreWithOverdueLoan(t)
	gateway := new(mocks.PaymentGatewayMock)
	handler := paylatefees.NewCommandHandler(store, gateway)

	// act
	result := handler.Handle(ctx, paylatefees.BuildCommand(patronID, givenBook().ID, dueAt))

	// assert
	assert.Equal(t, core.OutcomeBusinessRuleViolation, result.Outcome)
	assert.Equal(t, "No late fees to pay.", result.Message)
	gateway.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_CommandHandler_Handle_Fails_WhenFeeCannotBeAssessed(t *testing.T) {
	// setup
	ctx := context.Background()
	store := &failingStore{Store: newStoreWithOverdueLoan(t), recordErr: errors.New("connection refused")}
	gateway := new(mocks.PaymentGatewayMock)
	handler := paylatefees.NewCommandHandler(store, gateway)

	// act
	result := handler.Handle(ctx, paylatefees.BuildCommand(patronID, givenBook().ID, requestedAt))

	// assert
	assert.Equal(t, core.OutcomePersistenceError, result.Outcome)
	assert.Equal(t, "Unable to calculate late fees.", result.Message)
	gateway.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// newStoreWithOverdueLoan seeds a loan of givenBook to patronID which is five days overdue at requestedAt.
func newStoreWithOverdueLoan(t *testing.T) *memoryengine.Store {
	t.Helper()

	book := givenBook()
	store, err := memoryengine.NewStore(memoryengine.WithBooks(book))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.AdjustBookAvailability(ctx, book.ID, -1))
	require.NoError(t, store.InsertBorrowRecord(ctx, catalog.BuildBorrowRecord(patronID, book.ID, borrowedAt, dueAt)))

	return store
}

type failingStore struct {
	*memoryengine.Store
	recordErr error
}

func (s *failingStore) FindLatestBorrowRecord(
	ctx context.Context,
	patronID catalog.PatronID,
	bookID catalog.BookID,
) (catalog.BorrowRecord, error) {

	if s.recordErr != nil {
		return catalog.BorrowRecord{}, s.recordErr
	}

	return s.Store.FindLatestBorrowRecord(ctx, patronID, bookID)
}
