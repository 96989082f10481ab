package latefee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/memoryengine"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/latefee"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

const patronID = "135790"

var (
	borrowedAt = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	dueAt      = borrowedAt.Add(core.LoanPeriod)
	day        = 24 * time.Hour
)

func Test_QueryHandler_Handle_OpenLoan(t *testing.T) {
	testCases := []struct {
		name         string
		at           time.Time
		expectedFee  string
		expectedDays int
		status       string
	}{
		{name: "before the due date", at: dueAt.Add(-day), expectedFee: "0.00", expectedDays: 0, status: core.FeeStatusNotOverdue},
		{name: "three days late", at: dueAt.Add(3 * day), expectedFee: "1.50", expectedDays: 3, status: core.FeeStatusOverdue},
		{name: "long overdue is capped", at: dueAt.Add(40 * day), expectedFee: "15.00", expectedDays: 40, status: core.FeeStatusOverdue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			store := newStore(t)
			handler := latefee.NewQueryHandler(store)

			// act
			fee, err := handler.Handle(context.Background(), latefee.BuildQuery(patronID, 1, tc.at))

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectedFee, fee.FeeAmount.StringFixed(2))
			assert.Equal(t, tc.expectedDays, fee.DaysOverdue)
			assert.Equal(t, tc.status, fee.Status)
		})
	}
}

func Test_QueryHandler_Handle_ReturnedLoan_IsAssessedAtReturnDate(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := newStore(t)
	_, err := store.CloseBorrowRecord(ctx, patronID, 1, dueAt.Add(2*day))
	require.NoError(t, err)
	handler := latefee.NewQueryHandler(store)

	// act
	fee, err := handler.Handle(ctx, latefee.BuildQuery(patronID, 1, dueAt.Add(30*day)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "1.00", fee.FeeAmount.StringFixed(2))
	assert.Equal(t, 2, fee.DaysOverdue)
}

func Test_QueryHandler_Handle_NoRecord(t *testing.T) {
	// arrange
	handler := latefee.NewQueryHandler(newStore(t))

	// act
	fee, err := handler.Handle(context.Background(), latefee.BuildQuery("000000", 1, dueAt))

	// assert
	require.NoError(t, err)
	assert.True(t, fee.FeeAmount.IsZero())
	assert.Equal(t, 0, fee.DaysOverdue)
	assert.Equal(t, "No borrow record found", fee.Status)
}

func Test_QueryHandler_Handle_ReturnsStoreError(t *testing.T) {
	// arrange
	storeErr := errors.New("connection refused")
	handler := latefee.NewQueryHandler(failingStore{err: storeErr})

	// act
	_, err := handler.Handle(context.Background(), latefee.BuildQuery(patronID, 1, dueAt))

	// assert
	assert.ErrorIs(t, err, storeErr)
}

func newStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore(memoryengine.WithBooks(
		catalog.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", TotalCopies: 1, AvailableCopies: 0},
	))
	require.NoError(t, err)
	require.NoError(t, store.InsertBorrowRecord(context.Background(), catalog.BuildBorrowRecord(patronID, 1, borrowedAt, dueAt)))

	return store
}

type failingStore struct {
	err error
}

func (s failingStore) FindLatestBorrowRecord(context.Context, catalog.PatronID, catalog.BookID) (catalog.BorrowRecord, error) {
	return catalog.BorrowRecord{}, s.err
}
