package searchbooks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/memoryengine"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/searchbooks"
)

func Test_QueryHandler_Handle_MatchesByKind(t *testing.T) {
	testCases := []struct {
		name           string
		query          searchbooks.Query
		expectedTitles []string
	}{
		{
			name:           "title substring ignores case",
			query:          searchbooks.BuildQuery("PROGRAMMING", "title"),
			expectedTitles: []string{"The C Programming Language", "The Go Programming Language"},
		},
		{
			name:           "author substring",
			query:          searchbooks.BuildQuery("kernighan", "author"),
			expectedTitles: []string{"The C Programming Language", "The Go Programming Language"},
		},
		{
			name:           "isbn matches exactly",
			query:          searchbooks.BuildQuery("9780134190440", "isbn"),
			expectedTitles: []string{"The Go Programming Language"},
		},
		{
			name:           "isbn does not match a prefix",
			query:          searchbooks.BuildQuery("978013419044", "isbn"),
			expectedTitles: []string{},
		},
		{
			name:           "empty term",
			query:          searchbooks.BuildQuery("", "title"),
			expectedTitles: []string{},
		},
		{
			name:           "unknown kind",
			query:          searchbooks.BuildQuery("Go", "publisher"),
			expectedTitles: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := searchbooks.NewQueryHandler(newStore(t))

			// act
			result, err := handler.Handle(context.Background(), tc.query)

			// assert
			require.NoError(t, err)
			assert.Equal(t, len(tc.expectedTitles), result.Count)
			assert.Equal(t, tc.expectedTitles, titlesOf(result))
		})
	}
}

func Test_QueryHandler_Handle_ReportsAvailability(t *testing.T) {
	// arrange
	handler := searchbooks.NewQueryHandler(newStore(t))

	// act
	result, err := handler.Handle(context.Background(), searchbooks.BuildQuery("9780201616224", "isbn"))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Books, 1)
	assert.Equal(t, searchbooks.BookInfo{
		BookID:          3,
		Title:           "The Pragmatic Programmer",
		Author:          "Andrew Hunt",
		ISBN:            "9780201616224",
		TotalCopies:     2,
		AvailableCopies: 0,
	}, result.Books[0])
}

func Test_QueryHandler_Handle_ReturnsStoreError(t *testing.T) {
	// arrange
	storeErr := errors.New("connection refused")
	handler := searchbooks.NewQueryHandler(failingStore{err: storeErr})

	// act
	_, err := handler.Handle(context.Background(), searchbooks.BuildQuery("Go", "title"))

	// assert
	assert.ErrorIs(t, err, storeErr)
}

func newStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore(memoryengine.WithBooks(
		catalog.Book{ID: 1, Title: "The Go Programming Language", Author: "Alan Donovan, Brian Kernighan", ISBN: "9780134190440", TotalCopies: 3, AvailableCopies: 3},
		catalog.Book{ID: 2, Title: "The C Programming Language", Author: "Brian Kernighan, Dennis Ritchie", ISBN: "9780131103627", TotalCopies: 1, AvailableCopies: 1},
		catalog.Book{ID: 3, Title: "The Pragmatic Programmer", Author: "Andrew Hunt", ISBN: "9780201616224", TotalCopies: 2, AvailableCopies: 0},
	))
	require.NoError(t, err)

	return store
}

func titlesOf(result searchbooks.SearchResult) []string {
	titles := make([]string, 0, len(result.Books))
	for _, book := range result.Books {
		titles = append(titles, book.Title)
	}

	return titles
}

type failingStore struct {
	err error
}

func (s failingStore) SearchBooks(context.Context, catalog.SearchField, string) (catalog.Books, error) {
	return nil, s.err
}
