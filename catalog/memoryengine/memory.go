package memoryengine

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	logMsgOperation           = "catalog operation: "
	logMsgBookInserted        = "book inserted"
	logMsgAvailabilityChanged = "availability adjusted"
	logMsgAvailabilityRefused = "availability adjustment refused"
	logMsgDuplicateISBN       = "duplicate isbn refused"
	logMsgRecordInserted      = "borrow record inserted"
	logMsgRecordClosed        = "borrow record closed"
	logAttrBookID             = "book_id"
	logAttrPatronID           = "patron_id"
	logAttrISBN               = "isbn"
	logAttrDelta              = "delta"
	logAttrAvailable          = "available_copies"
)

// Store keeps the catalog in memory. It is safe for concurrent use.
type Store struct {
	mu               sync.RWMutex
	books            map[catalog.BookID]catalog.Book
	bookIDByISBN     map[string]catalog.BookID
	records          []catalog.BorrowRecord
	nextBookID       catalog.BookID
	logger           catalog.Logger
	contextualLogger catalog.ContextualLogger
}

var _ catalog.Store = (*Store)(nil)

// NewStore creates an empty Store with optional configuration.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		books:        make(map[catalog.BookID]catalog.Book),
		bookIDByISBN: make(map[string]catalog.BookID),
		records:      make([]catalog.BorrowRecord, 0),
		nextBookID:   1,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindBookByID returns the book or catalog.ErrBookNotFound.
func (s *Store) FindBookByID(_ context.Context, bookID catalog.BookID) (catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[bookID]
	if !ok {
		return catalog.Book{}, catalog.ErrBookNotFound
	}

	return book, nil
}

// FindBookByISBN returns the book or catalog.ErrBookNotFound.
func (s *Store) FindBookByISBN(_ context.Context, isbn string) (catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookID, ok := s.bookIDByISBN[isbn]
	if !ok {
		return catalog.Book{}, catalog.ErrBookNotFound
	}

	return s.books[bookID], nil
}

// InsertBook stores a new book with all copies available and returns it with its assigned ID.
// It fails with catalog.ErrDuplicateISBN if the ISBN is already cataloged.
func (s *Store) InsertBook(ctx context.Context, newBook catalog.NewBook) (catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookIDByISBN[newBook.ISBN]; exists {
		s.logWarn(ctx, logMsgDuplicateISBN, logAttrISBN, newBook.ISBN)
		return catalog.Book{}, catalog.ErrDuplicateISBN
	}

	book := catalog.Book{
		ID:              s.nextBookID,
		Title:           newBook.Title,
		Author:          newBook.Author,
		ISBN:            newBook.ISBN,
		TotalCopies:     newBook.TotalCopies,
		AvailableCopies: newBook.TotalCopies,
	}

	s.books[book.ID] = book
	s.bookIDByISBN[book.ISBN] = book.ID
	s.nextBookID++

	s.logOperation(ctx, logMsgBookInserted, logAttrBookID, book.ID, logAttrISBN, book.ISBN)

	return book, nil
}

// AdjustBookAvailability adds delta to the available copies, iff the result stays within [0, total].
// Otherwise, nothing changes and catalog.ErrAvailabilityOutOfRange is returned.
func (s *Store) AdjustBookAvailability(ctx context.Context, bookID catalog.BookID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[bookID]
	if !ok {
		return catalog.ErrBookNotFound
	}

	if !book.CanAdjustAvailability(delta) {
		s.logWarn(ctx, logMsgAvailabilityRefused, logAttrBookID, bookID, logAttrDelta, delta, logAttrAvailable, book.AvailableCopies)
		return catalog.ErrAvailabilityOutOfRange
	}

	book.AvailableCopies += delta
	s.books[bookID] = book

	s.logOperation(ctx, logMsgAvailabilityChanged, logAttrBookID, bookID, logAttrDelta, delta, logAttrAvailable, book.AvailableCopies)

	return nil
}

// SearchBooks returns the books matching term for the given field, ordered by title.
// Titles compare case-insensitively first, close to what a PostgreSQL collation does for the same query.
func (s *Store) SearchBooks(_ context.Context, field catalog.SearchField, term string) (catalog.Books, error) {
	if !field.IsValid() {
		return nil, catalog.ErrInvalidSearchField
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(catalog.Books, 0)
	for _, book := range s.books {
		if field.Matches(book, term) {
			found = append(found, book)
		}
	}

	slices.SortFunc(found, func(a, b catalog.Book) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.ID, b.ID),
		)
	})

	return found, nil
}

// InsertBorrowRecord stores a new borrow record for an existing book.
func (s *Store) InsertBorrowRecord(ctx context.Context, record catalog.BorrowRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[record.BookID]; !ok {
		return catalog.ErrBookNotFound
	}

	s.records = append(s.records, record)

	s.logOperation(ctx, logMsgRecordInserted, logAttrPatronID, record.PatronID, logAttrBookID, record.BookID)

	return nil
}

// CloseBorrowRecord sets the return date on the open record of the patron for the book and returns the closed record.
// It fails with catalog.ErrBorrowRecordNotFound if there is no open record, so a record is never closed twice.
func (s *Store) CloseBorrowRecord(
	ctx context.Context,
	patronID catalog.PatronID,
	bookID catalog.BookID,
	returnDate time.Time,
) (catalog.BorrowRecord, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.latestIndex(patronID, bookID, true)
	if idx < 0 {
		return catalog.BorrowRecord{}, catalog.ErrBorrowRecordNotFound
	}

	s.records[idx] = s.records[idx].ClosedAt(returnDate)

	s.logOperation(ctx, logMsgRecordClosed, logAttrPatronID, patronID, logAttrBookID, bookID)

	return s.records[idx], nil
}

// FindOpenBorrowRecord returns the open record of the patron for the book or catalog.ErrBorrowRecordNotFound.
func (s *Store) FindOpenBorrowRecord(_ context.Context, patronID catalog.PatronID, bookID catalog.BookID) (catalog.BorrowRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.latestIndex(patronID, bookID, true)
	if idx < 0 {
		return catalog.BorrowRecord{}, catalog.ErrBorrowRecordNotFound
	}

	return s.records[idx], nil
}

// FindLatestBorrowRecord returns the most recently borrowed record, open or closed,
// of the patron for the book or catalog.ErrBorrowRecordNotFound.
func (s *Store) FindLatestBorrowRecord(_ context.Context, patronID catalog.PatronID, bookID catalog.BookID) (catalog.BorrowRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.latestIndex(patronID, bookID, false)
	if idx < 0 {
		return catalog.BorrowRecord{}, catalog.ErrBorrowRecordNotFound
	}

	return s.records[idx], nil
}

// FindOpenRecordsForPatron returns the patron's open loans, oldest borrow first.
func (s *Store) FindOpenRecordsForPatron(_ context.Context, patronID catalog.PatronID) (catalog.PatronLoans, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loans := s.patronLoans(patronID, true)
	slices.SortStableFunc(loans, func(a, b catalog.PatronLoan) int {
		return a.BorrowDate.Compare(b.BorrowDate)
	})

	return loans, nil
}

// FindHistoryForPatron returns all of the patron's loans, newest borrow first.
func (s *Store) FindHistoryForPatron(_ context.Context, patronID catalog.PatronID) (catalog.PatronLoans, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loans := s.patronLoans(patronID, false)
	slices.Reverse(loans)
	slices.SortStableFunc(loans, func(a, b catalog.PatronLoan) int {
		return b.BorrowDate.Compare(a.BorrowDate)
	})

	return loans, nil
}

// latestIndex finds the record with the latest borrow date for the pair; later inserts win ties.
// Must be called with the lock held.
func (s *Store) latestIndex(patronID catalog.PatronID, bookID catalog.BookID, onlyOpen bool) int {
	found := -1

	for i, record := range s.records {
		if record.PatronID != patronID || record.BookID != bookID {
			continue
		}

		if onlyOpen && !record.IsOpen() {
			continue
		}

		if found < 0 || !record.BorrowDate.Before(s.records[found].BorrowDate) {
			found = i
		}
	}

	return found
}

// patronLoans joins the patron's records with their books in insertion order.
// Must be called with the lock held.
func (s *Store) patronLoans(patronID catalog.PatronID, onlyOpen bool) catalog.PatronLoans {
	loans := make(catalog.PatronLoans, 0)

	for _, record := range s.records {
		if record.PatronID != patronID {
			continue
		}

		if onlyOpen && !record.IsOpen() {
			continue
		}

		book := s.books[record.BookID]
		loans = append(loans, catalog.PatronLoan{
			BorrowRecord: record,
			Title:        book.Title,
			Author:       book.Author,
		})
	}

	return loans
}

// logOperation logs writes at info level if a logger is configured.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs refused writes at warn level if a logger is configured.
func (s *Store) logWarn(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
