package returnbook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/memoryengine"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/library-catalog-go/testutil/observability/testdoubles"
)

var errStoreDown = errors.New("connection refused")

func Test_CommandHandler_Handle_Success_OnTime(t *testing.T) {
	// setup
	ctx := context.Background()
	store, book := newStoreWithLoan(t)
	handler := returnbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, returnbook.BuildCommand(patronID, book.ID, dueAt))

	// assert
	assert.Equal(t, core.OutcomeSuccess, result.Outcome)
	assert.Equal(t, `Successfully returned "Dune". No late fees.`, result.Message)
	assertAvailableCopies(ctx, t, store, book.ID, 2)

	_, err := store.FindOpenBorrowRecord(ctx, patronID, book.ID)
	assert.ErrorIs(t, err, catalog.ErrBorrowRecordNotFound)
}

func Test_CommandHandler_Handle_Success_ReportsLateFee(t *testing.T) {
	// setup
	ctx := context.Background()
	store, book := newStoreWithLoan(t)
	handler := returnbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, returnbook.BuildCommand(patronID, book.ID, dueAt.Add(10*24*time.Hour+time.Hour)))

	// assert
	assert.Equal(t, core.OutcomeSuccess, result.Outcome)
	assert.Equal(t, `Successfully returned "Dune". Late fee: $6.50 (10 days overdue).`, result.Message)
}

func Test_CommandHandler_Handle_Rejects_SecondReturn(t *testing.T) {
	// setup
	ctx := context.Background()
	store, book := newStoreWithLoan(t)
	handler := returnbook.NewCommandHandler(store)
	first := handler.Handle(ctx, returnbook.BuildCommand(patronID, book.ID, dueAt))
	require.True(t, first.Succeeded(), first.Message)

	// act
	result := handler.Handle(ctx, returnbook.BuildCommand(patronID, book.ID, dueAt.Add(time.Hour)))

	// assert
	assert.Equal(t, core.OutcomeBusinessRuleViolation, result.Outcome)
	assert.Equal(t, "No active borrow record found for this patron and book.", result.Message)
	assertAvailableCopies(ctx, t, store, book.ID, 2)
}

func Test_CommandHandler_Handle_Rejects_OtherPatron(t *testing.T) {
	// setup
	ctx := context.Background()
	store, book := newStoreWithLoan(t)
	handler := returnbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, returnbook.BuildCommand("111111", book.ID, dueAt))

	// assert
	assert.Equal(t, core.OutcomeBusinessRuleViolation, result.Outcome)
	assertAvailableCopies(ctx, t, store, book.ID, 1)
}

func Test_CommandHandler_Handle_Rejects_UnknownBook(t *testing.T) {
	// setup
	ctx := context.Background()
	store, _ := newStoreWithLoan(t)
	handler := returnbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, returnbook.BuildCommand(patronID, 42, dueAt))

	// assert
	assert.Equal(t, core.OutcomeNotFound, result.Outcome)
	assert.Equal(t, core.MsgBookNotFound, result.Message)
}

func Test_CommandHandler_Handle_Rejects_WhenReturnedConcurrently(t *testing.T) {
	// setup
	ctx := context.Background()
	memory, book := newStoreWithLoan(t)
	store := &failingStore{Store: memory, closeErr: catalog.ErrBorrowRecordNotFound}
	handler := returnbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, returnbook.BuildCommand(patronID, book.ID, dueAt))

	// assert
	assert.Equal(t, core.OutcomeBusinessRuleViolation, result.Outcome)
	assert.Equal(t, "No active borrow record found for this patron and book.", result.Message)
	assertAvailableCopies(ctx, t, memory, book.ID, 1)
}

func Test_CommandHandler_Handle_Fails_WhenCloseFails(t *testing.T) {
	// setup
	ctx := context.Background()
	memory, book := newStoreWithLoan(t)
	store := &failingStore{Store: memory, closeErr: errStoreDown}
	handler := returnbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, returnbook.BuildCommand(patronID, book.ID, dueAt))

	// assert
	assert.Equal(t, core.OutcomePersistenceError, result.Outcome)
	assert.Equal(t, "Database error occurred while updating the return date.", result.Message)
	assert.ErrorIs(t, result.Err, errStoreDown)
	assertAvailableCopies(ctx, t, memory, book.ID, 1)
}

func Test_CommandHandler_Handle_KeepsLoanClosed_WhenCopyCannotBeReleased(t *testing.T) {
	// setup
	ctx := context.Background()
	memory, book := newStoreWithLoan(t)
	store := &failingStore{Store: memory, releaseErr: errStoreDown}
	logger := testdoubles.NewContextualLoggerSpy(true)
	handler := returnbook.NewCommandHandler(store, returnbook.WithContextualLogger(logger))

	// act
	result := handler.Handle(ctx, returnbook.BuildCommand(patronID, book.ID, dueAt))

	// assert
	assert.Equal(t, core.OutcomePersistenceError, result.Outcome)
	assert.Equal(t, "Database error occurred while updating book availability.", result.Message)
	assert.True(t, logger.HasWarnLog("loan closed but the copy could not be made available again"))
	assert.True(t, logger.HasArg("warn", "loan closed but the copy could not be made available again", "patron_id", patronID))

	_, err := memory.FindOpenBorrowRecord(ctx, patronID, book.ID)
	assert.ErrorIs(t, err, catalog.ErrBorrowRecordNotFound)
	assertAvailableCopies(ctx, t, memory, book.ID, 1)
}

// newStoreWithLoan seeds a book with two copies, one of them lent to patronID.
func newStoreWithLoan(t *testing.T) (*memoryengine.Store, catalog.Book) {
	t.Helper()

	book := givenBook()
	store, err := memoryengine.NewStore(memoryengine.WithBooks(book))
	require.NoError(t, err)
	require.NoError(t, store.InsertBorrowRecord(context.Background(), givenOpenRecord(book.ID)))

	return store, book
}

func assertAvailableCopies(ctx context.Context, t *testing.T, store *memoryengine.Store, bookID catalog.BookID, expected int) {
	t.Helper()

	book, err := store.FindBookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, expected, book.AvailableCopies)
}

type failingStore struct {
	*memoryengine.Store
	closeErr   error
	releaseErr error
}

func (s *failingStore) CloseBorrowRecord(
	ctx context.Context,
	patronID catalog.PatronID,
	bookID catalog.BookID,
	returnDate time.Time,
) (catalog.BorrowRecord, error) {
	if s.closeErr != nil {
		return catalog.BorrowRecord{}, s.closeErr
	}

	return s.Store.CloseBorrowRecord(ctx, patronID, bookID, returnDate)
}

func (s *failingStore) AdjustBookAvailability(ctx context.Context, bookID catalog.BookID, delta int) error {
	if s.releaseErr != nil {
		return s.releaseErr
	}

	return s.Store.AdjustBookAvailability(ctx, bookID, delta)
}
