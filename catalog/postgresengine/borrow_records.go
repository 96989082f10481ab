package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgresengine/internal/adapters"
)

const (
	operationInsertBorrowRecord      = "insert_borrow_record"
	operationCloseBorrowRecord       = "close_borrow_record"
	operationFindOpenBorrowRecord    = "find_open_borrow_record"
	operationFindLatestBorrowRecord  = "find_latest_borrow_record"
	operationFindOpenRecordsOfPatron = "find_open_records_for_patron"
	operationFindHistoryOfPatron     = "find_history_for_patron"

	logMsgRecordInserted = "borrow record inserted"
	logMsgRecordClosed   = "borrow record closed"
	logAttrPatronID      = "patron_id"
)

// InsertBorrowRecord stores a new borrow record for an existing book.
// It fails with catalog.ErrBookNotFound if the book does not exist.
func (s *Store) InsertBorrowRecord(ctx context.Context, record catalog.BorrowRecord) error {
	row := goqu.Record{
		colPatronID:   record.PatronID,
		colBookID:     record.BookID,
		colBorrowDate: catalog.ToStoredAt(record.BorrowDate),
		colDueDate:    catalog.ToStoredAt(record.DueDate),
	}

	if record.ReturnDate != nil {
		row[colReturnDate] = catalog.ToStoredAt(*record.ReturnDate)
	}

	insertStmt := s.dialect().Insert(s.borrowRecordsTableName).Rows(row)

	if _, err := s.execute(ctx, operationInsertBorrowRecord, insertStmt); err != nil {
		if isPGCode(err, pgCodeForeignKeyViolation) {
			return catalog.ErrBookNotFound
		}

		return err
	}

	s.logOperation(ctx, logMsgRecordInserted, logAttrPatronID, record.PatronID, logAttrBookID, record.BookID)

	return nil
}

// CloseBorrowRecord sets the return date on the open record of the patron for the book and returns the closed record.
// The UPDATE only matches a record that is still open, so a loan is never closed twice.
func (s *Store) CloseBorrowRecord(
	ctx context.Context,
	patronID catalog.PatronID,
	bookID catalog.BookID,
	returnDate time.Time,
) (catalog.BorrowRecord, error) {

	openRecordID := s.dialect().
		From(s.borrowRecordsTableName).
		Select(colID).
		Where(s.recordsOf(patronID, bookID), goqu.C(colReturnDate).IsNull()).
		Order(goqu.I(colBorrowDate).Desc(), goqu.I(colID).Desc()).
		Limit(1)

	updateStmt := s.dialect().
		Update(s.borrowRecordsTableName).
		Set(goqu.Record{colReturnDate: catalog.ToStoredAt(returnDate)}).
		Where(goqu.C(colID).Eq(openRecordID), goqu.C(colReturnDate).IsNull()).
		Returning(recordColumns()...)

	records, err := queryAll(ctx, s, operationCloseBorrowRecord, updateStmt, scanBorrowRecord)
	if err != nil {
		return catalog.BorrowRecord{}, err
	}

	if len(records) == 0 {
		return catalog.BorrowRecord{}, catalog.ErrBorrowRecordNotFound
	}

	s.logOperation(ctx, logMsgRecordClosed, logAttrPatronID, patronID, logAttrBookID, bookID)

	return records[0], nil
}

// FindOpenBorrowRecord returns the open record of the patron for the book or catalog.ErrBorrowRecordNotFound.
func (s *Store) FindOpenBorrowRecord(ctx context.Context, patronID catalog.PatronID, bookID catalog.BookID) (catalog.BorrowRecord, error) {
	selectStmt := s.selectRecords().
		Where(s.recordsOf(patronID, bookID), goqu.C(colReturnDate).IsNull())

	return s.findLatestRecord(ctx, operationFindOpenBorrowRecord, selectStmt)
}

// FindLatestBorrowRecord returns the most recently borrowed record, open or closed,
// of the patron for the book or catalog.ErrBorrowRecordNotFound.
func (s *Store) FindLatestBorrowRecord(ctx context.Context, patronID catalog.PatronID, bookID catalog.BookID) (catalog.BorrowRecord, error) {
	selectStmt := s.selectRecords().Where(s.recordsOf(patronID, bookID))

	return s.findLatestRecord(ctx, operationFindLatestBorrowRecord, selectStmt)
}

// FindOpenRecordsForPatron returns the patron's open loans joined with their books, oldest borrow first.
func (s *Store) FindOpenRecordsForPatron(ctx context.Context, patronID catalog.PatronID) (catalog.PatronLoans, error) {
	selectStmt := s.selectPatronLoans(patronID).
		Where(goqu.T(s.borrowRecordsTableName).Col(colReturnDate).IsNull()).
		Order(
			goqu.T(s.borrowRecordsTableName).Col(colBorrowDate).Asc(),
			goqu.T(s.borrowRecordsTableName).Col(colID).Asc(),
		)

	return queryAll(ctx, s, operationFindOpenRecordsOfPatron, selectStmt, scanPatronLoan)
}

// FindHistoryForPatron returns all of the patron's loans joined with their books, newest borrow first.
func (s *Store) FindHistoryForPatron(ctx context.Context, patronID catalog.PatronID) (catalog.PatronLoans, error) {
	selectStmt := s.selectPatronLoans(patronID).
		Order(
			goqu.T(s.borrowRecordsTableName).Col(colBorrowDate).Desc(),
			goqu.T(s.borrowRecordsTableName).Col(colID).Desc(),
		)

	return queryAll(ctx, s, operationFindHistoryOfPatron, selectStmt, scanPatronLoan)
}

func (s *Store) findLatestRecord(ctx context.Context, operation string, selectStmt *goqu.SelectDataset) (catalog.BorrowRecord, error) {
	selectStmt = selectStmt.
		Order(goqu.I(colBorrowDate).Desc(), goqu.I(colID).Desc()).
		Limit(1)

	records, err := queryAll(ctx, s, operation, selectStmt, scanBorrowRecord)
	if err != nil {
		return catalog.BorrowRecord{}, err
	}

	if len(records) == 0 {
		return catalog.BorrowRecord{}, catalog.ErrBorrowRecordNotFound
	}

	return records[0], nil
}

func (s *Store) recordsOf(patronID catalog.PatronID, bookID catalog.BookID) exp.ExpressionList {
	return goqu.And(
		goqu.C(colPatronID).Eq(patronID),
		goqu.C(colBookID).Eq(bookID),
	)
}

func (s *Store) selectRecords() *goqu.SelectDataset {
	return s.dialect().From(s.borrowRecordsTableName).Select(recordColumns()...)
}

func (s *Store) selectPatronLoans(patronID catalog.PatronID) *goqu.SelectDataset {
	records := goqu.T(s.borrowRecordsTableName)
	books := goqu.T(s.booksTableName)

	return s.dialect().
		From(records).
		Join(books, goqu.On(records.Col(colBookID).Eq(books.Col(colID)))).
		Select(
			records.Col(colPatronID),
			records.Col(colBookID),
			records.Col(colBorrowDate),
			records.Col(colDueDate),
			records.Col(colReturnDate),
			books.Col(colTitle),
			books.Col(colAuthor),
		).
		Where(records.Col(colPatronID).Eq(patronID))
}

func recordColumns() []interface{} {
	return []interface{}{colPatronID, colBookID, colBorrowDate, colDueDate, colReturnDate}
}

func storedReturnDate(returnDate *time.Time) *time.Time {
	if returnDate == nil {
		return nil
	}

	stored := catalog.ToStoredAt(*returnDate)

	return &stored
}

func scanBorrowRecord(rows adapters.DBRows) (catalog.BorrowRecord, error) {
	var record catalog.BorrowRecord

	if err := rows.Scan(&record.PatronID, &record.BookID, &record.BorrowDate, &record.DueDate, &record.ReturnDate); err != nil {
		return catalog.BorrowRecord{}, err
	}

	return normalizeRecord(record), nil
}

func scanPatronLoan(rows adapters.DBRows) (catalog.PatronLoan, error) {
	var loan catalog.PatronLoan

	err := rows.Scan(
		&loan.PatronID,
		&loan.BookID,
		&loan.BorrowDate,
		&loan.DueDate,
		&loan.ReturnDate,
		&loan.Title,
		&loan.Author,
	)
	if err != nil {
		return catalog.PatronLoan{}, err
	}

	loan.BorrowRecord = normalizeRecord(loan.BorrowRecord)

	return loan, nil
}

// normalizeRecord converts scanned timestamps to UTC, whatever session time zone the driver used.
func normalizeRecord(record catalog.BorrowRecord) catalog.BorrowRecord {
	record.BorrowDate = catalog.ToStoredAt(record.BorrowDate)
	record.DueDate = catalog.ToStoredAt(record.DueDate)
	record.ReturnDate = storedReturnDate(record.ReturnDate)

	return record
}
