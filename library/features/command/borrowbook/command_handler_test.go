package borrowbook_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/memoryengine"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/library-catalog-go/testutil/observability/testdoubles"
)

var errStoreDown = errors.New("connection refused")

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	book := givenBook(2)
	store := newStore(t, book)
	handler := borrowbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, book.ID, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomeSuccess, result.Outcome)
	assert.Equal(t, `Successfully borrowed "Dune". Due date: 2026-03-15.`, result.Message)
	assertAvailableCopies(ctx, t, store, book.ID, 1)

	record, err := store.FindOpenBorrowRecord(ctx, patronID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, borrowedAt, record.BorrowDate)
	assert.Equal(t, borrowedAt.Add(core.LoanPeriod), record.DueDate)
}

func Test_CommandHandler_Handle_Rejects_SixthLoan(t *testing.T) {
	// setup
	ctx := context.Background()
	books := make([]catalog.Book, 0, 6)
	for i := 1; i <= 6; i++ {
		books = append(books, catalog.Book{
			ID:              catalog.BookID(i),
			Title:           "Book",
			Author:          "Author",
			ISBN:            fmt.Sprintf("978000000000%d", i),
			TotalCopies:     1,
			AvailableCopies: 1,
		})
	}
	store := newStore(t, books...)
	handler := borrowbook.NewCommandHandler(store)

	for i := 1; i <= 5; i++ {
		result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, catalog.BookID(i), borrowedAt))
		require.True(t, result.Succeeded(), result.Message)
	}

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, 6, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomeBusinessRuleViolation, result.Outcome)
	assert.Equal(t, "You have reached the maximum borrowing limit of 5 books.", result.Message)
	assertAvailableCopies(ctx, t, store, 6, 1)
}

func Test_CommandHandler_Handle_Rejects_WhenNoCopyIsLeft(t *testing.T) {
	// setup
	ctx := context.Background()
	book := givenBook(0)
	store := newStore(t, book)
	handler := borrowbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, book.ID, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomeBusinessRuleViolation, result.Outcome)
	assert.Equal(t, "This book is currently not available.", result.Message)
}

func Test_CommandHandler_Handle_Rejects_WhenLastCopyIsClaimedConcurrently(t *testing.T) {
	// setup
	ctx := context.Background()
	book := givenBook(1)
	store := &failingStore{Store: newStore(t, book), claimErr: catalog.ErrAvailabilityOutOfRange}
	handler := borrowbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, book.ID, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomeBusinessRuleViolation, result.Outcome)
	assert.Equal(t, "This book is currently not available.", result.Message)

	_, err := store.FindOpenBorrowRecord(ctx, patronID, book.ID)
	assert.ErrorIs(t, err, catalog.ErrBorrowRecordNotFound)
}

func Test_CommandHandler_Handle_Rejects_UnknownBook(t *testing.T) {
	// setup
	ctx := context.Background()
	handler := borrowbook.NewCommandHandler(newStore(t))

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, 99, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomeNotFound, result.Outcome)
	assert.Equal(t, core.MsgBookNotFound, result.Message)
}

func Test_CommandHandler_Handle_Rejects_InvalidPatron_WithoutTouchingTheStore(t *testing.T) {
	// setup
	ctx := context.Background()
	store := &failingStore{Store: newStore(t), findErr: errStoreDown}
	handler := borrowbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand("abc", 1, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomeValidationError, result.Outcome)
	assert.Equal(t, core.MsgInvalidPatronID, result.Message)
}

func Test_CommandHandler_Handle_GivesCopyBack_WhenRecordCannotBeWritten(t *testing.T) {
	// setup
	ctx := context.Background()
	book := givenBook(2)
	store := &failingStore{Store: newStore(t, book), insertErr: errStoreDown}
	handler := borrowbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, book.ID, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomePersistenceError, result.Outcome)
	assert.Equal(t, "Database error occurred while creating the borrow record.", result.Message)
	assert.ErrorIs(t, result.Err, errStoreDown)
	assertAvailableCopies(ctx, t, store.Store, book.ID, 2)
}

func Test_CommandHandler_Handle_LogsWarning_WhenCopyCannotBeGivenBack(t *testing.T) {
	// setup
	ctx := context.Background()
	book := givenBook(2)
	store := &failingStore{Store: newStore(t, book), insertErr: errStoreDown, releaseErr: errors.New("still down")}
	logger := testdoubles.NewContextualLoggerSpy(true)
	handler := borrowbook.NewCommandHandler(store, borrowbook.WithContextualLogger(logger))

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, book.ID, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomePersistenceError, result.Outcome)
	assert.ErrorIs(t, result.Err, errStoreDown)
	assert.ErrorContains(t, result.Err, "still down")
	assert.True(t, logger.HasWarnLog("giving back the claimed copy failed, availability is off by one"))
	assert.True(t, logger.HasArg("warn", "giving back the claimed copy failed, availability is off by one", "book_id", book.ID))
	assertAvailableCopies(ctx, t, store.Store, book.ID, 1)
}

func Test_CommandHandler_Handle_Fails_WhenBookLookupFails(t *testing.T) {
	// setup
	ctx := context.Background()
	store := &failingStore{Store: newStore(t, givenBook(1)), findErr: errStoreDown}
	handler := borrowbook.NewCommandHandler(store)

	// act
	result := handler.Handle(ctx, borrowbook.BuildCommand(patronID, 7, borrowedAt))

	// assert
	assert.Equal(t, core.OutcomePersistenceError, result.Outcome)
	assert.Equal(t, "Database error occurred while loading the book.", result.Message)
}

func newStore(t *testing.T, books ...catalog.Book) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore(memoryengine.WithBooks(books...))
	require.NoError(t, err)

	return store
}

func assertAvailableCopies(ctx context.Context, t *testing.T, store *memoryengine.Store, bookID catalog.BookID, expected int) {
	t.Helper()

	book, err := store.FindBookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, expected, book.AvailableCopies)
}

// failingStore lets single store calls fail. A claim is a negative availability delta, a release a positive one.
type failingStore struct {
	*memoryengine.Store
	findErr    error
	claimErr   error
	releaseErr error
	insertErr  error
}

func (s *failingStore) FindBookByID(ctx context.Context, bookID catalog.BookID) (catalog.Book, error) {
	if s.findErr != nil {
		return catalog.Book{}, s.findErr
	}

	return s.Store.FindBookByID(ctx, bookID)
}

func (s *failingStore) AdjustBookAvailability(ctx context.Context, bookID catalog.BookID, delta int) error {
	if delta < 0 && s.claimErr != nil {
		return s.claimErr
	}

	if delta > 0 && s.releaseErr != nil {
		return s.releaseErr
	}

	return s.Store.AdjustBookAvailability(ctx, bookID, delta)
}

func (s *failingStore) InsertBorrowRecord(ctx context.Context, record catalog.BorrowRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}

	return s.Store.InsertBorrowRecord(ctx, record)
}
