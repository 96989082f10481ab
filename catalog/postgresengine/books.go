package postgresengine

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgresengine/internal/adapters"
)

const (
	operationFindBookByID       = "find_book_by_id"
	operationFindBookByISBN     = "find_book_by_isbn"
	operationInsertBook         = "insert_book"
	operationAdjustAvailability = "adjust_book_availability"
	operationSearchBooks        = "search_books"

	logMsgBookInserted        = "book inserted"
	logMsgAvailabilityChanged = "availability adjusted"
	logMsgAvailabilityRefused = "availability adjustment refused"
	logAttrBookID             = "book_id"
	logAttrISBN               = "isbn"
	logAttrDelta              = "delta"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindBookByID returns the book or catalog.ErrBookNotFound.
func (s *Store) FindBookByID(ctx context.Context, bookID catalog.BookID) (catalog.Book, error) {
	selectStmt := s.selectBooks().Where(goqu.C(colID).Eq(bookID))

	return s.findOneBook(ctx, operationFindBookByID, selectStmt)
}

// FindBookByISBN returns the book or catalog.ErrBookNotFound.
func (s *Store) FindBookByISBN(ctx context.Context, isbn string) (catalog.Book, error) {
	selectStmt := s.selectBooks().Where(goqu.C(colISBN).Eq(isbn))

	return s.findOneBook(ctx, operationFindBookByISBN, selectStmt)
}

// InsertBook stores a new book with all copies available and returns it with its assigned ID.
// It fails with catalog.ErrDuplicateISBN if the ISBN is already cataloged.
func (s *Store) InsertBook(ctx context.Context, newBook catalog.NewBook) (catalog.Book, error) {
	insertStmt := s.dialect().
		Insert(s.booksTableName).
		Rows(goqu.Record{
			colTitle:           newBook.Title,
			colAuthor:          newBook.Author,
			colISBN:            newBook.ISBN,
			colTotalCopies:     newBook.TotalCopies,
			colAvailableCopies: newBook.TotalCopies,
		}).
		Returning(bookColumns()...)

	books, err := queryAll(ctx, s, operationInsertBook, insertStmt, scanBook)
	if err != nil {
		if isPGCode(err, pgCodeUniqueViolation) {
			return catalog.Book{}, catalog.ErrDuplicateISBN
		}

		return catalog.Book{}, err
	}

	book := books[0]
	s.logOperation(ctx, logMsgBookInserted, logAttrBookID, book.ID, logAttrISBN, book.ISBN)

	return book, nil
}

// AdjustBookAvailability adds delta to the available copies in one conditional UPDATE,
// which only matches while the result stays within [0, total_copies].
// Concurrent decrements of the last copy therefore cannot both succeed.
func (s *Store) AdjustBookAvailability(ctx context.Context, bookID catalog.BookID, delta int) error {
	updateStmt := s.dialect().
		Update(s.booksTableName).
		Set(goqu.Record{
			colAvailableCopies: goqu.L("? + ?", goqu.I(colAvailableCopies), delta),
		}).
		Where(
			goqu.C(colID).Eq(bookID),
			goqu.L("? + ? BETWEEN 0 AND ?", goqu.I(colAvailableCopies), delta, goqu.I(colTotalCopies)),
		)

	rowsAffected, err := s.execute(ctx, operationAdjustAvailability, updateStmt)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		if _, findErr := s.FindBookByID(ctx, bookID); findErr != nil {
			return findErr
		}

		s.logWarn(ctx, logMsgAvailabilityRefused, logAttrBookID, bookID, logAttrDelta, delta)

		return catalog.ErrAvailabilityOutOfRange
	}

	s.logOperation(ctx, logMsgAvailabilityChanged, logAttrBookID, bookID, logAttrDelta, delta)

	return nil
}

// SearchBooks returns the books matching term for the given field, ordered by title.
// ISBNs match exactly, titles and authors as case-insensitive substrings.
func (s *Store) SearchBooks(ctx context.Context, field catalog.SearchField, term string) (catalog.Books, error) {
	var column string

	switch field {
	case catalog.SearchByTitle:
		column = colTitle
	case catalog.SearchByAuthor:
		column = colAuthor
	case catalog.SearchByISBN:
		column = colISBN
	default:
		return nil, catalog.ErrInvalidSearchField
	}

	selectStmt := s.selectBooks().Order(goqu.I(colTitle).Asc(), goqu.I(colID).Asc())

	if field.MatchMode() == catalog.ExactMatch {
		selectStmt = selectStmt.Where(goqu.C(column).Eq(term))
	} else {
		selectStmt = selectStmt.Where(goqu.C(column).ILike("%" + likeEscaper.Replace(term) + "%"))
	}

	return queryAll(ctx, s, operationSearchBooks, selectStmt, scanBook)
}

func (s *Store) findOneBook(ctx context.Context, operation string, selectStmt *goqu.SelectDataset) (catalog.Book, error) {
	books, err := queryAll(ctx, s, operation, selectStmt.Limit(1), scanBook)
	if err != nil {
		return catalog.Book{}, err
	}

	if len(books) == 0 {
		return catalog.Book{}, catalog.ErrBookNotFound
	}

	return books[0], nil
}

func (s *Store) selectBooks() *goqu.SelectDataset {
	return s.dialect().From(s.booksTableName).Select(bookColumns()...)
}

func bookColumns() []interface{} {
	return []interface{}{colID, colTitle, colAuthor, colISBN, colTotalCopies, colAvailableCopies}
}

func scanBook(rows adapters.DBRows) (catalog.Book, error) {
	var book catalog.Book

	err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.TotalCopies, &book.AvailableCopies)

	return book, err
}
