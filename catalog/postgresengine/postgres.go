package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName         = "books"
	defaultBorrowRecordsTableName = "borrow_records"
	dialectPostgres               = "postgres"

	colID              = "id"
	colTitle           = "title"
	colAuthor          = "author"
	colISBN            = "isbn"
	colTotalCopies     = "total_copies"
	colAvailableCopies = "available_copies"
	colPatronID        = "patron_id"
	colBookID          = "book_id"
	colBorrowDate      = "borrow_date"
	colDueDate         = "due_date"
	colReturnDate      = "return_date"

	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

type sqlQueryString = string

// sqlBuilder is satisfied by all goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

// Store is the PostgreSQL implementation of catalog.Store.
type Store struct {
	db                     adapters.DBAdapter
	booksTableName         string
	borrowRecordsTableName string
	logger                 catalog.Logger
	metricsCollector       catalog.MetricsCollector
	tracingCollector       catalog.TracingCollector
	contextualLogger       catalog.ContextualLogger
}

var _ catalog.Store = (*Store)(nil)

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary and a replica pgx Pool.
// Reads run on the replica when the context carries catalog.EventualConsistency, everything else on the primary.
func NewStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if primary == nil || replica == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:                     db,
		booksTableName:         defaultBooksTableName,
		borrowRecordsTableName: defaultBorrowRecordsTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// BooksTableName returns the configured books table name.
func (s *Store) BooksTableName() string {
	return s.booksTableName
}

// BorrowRecordsTableName returns the configured borrow records table name.
func (s *Store) BorrowRecordsTableName() string {
	return s.borrowRecordsTableName
}

func (s *Store) dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// queryAll builds and runs a query and scans every returned row.
func queryAll[T any](
	ctx context.Context,
	s *Store,
	operation string,
	builder sqlBuilder,
	scan func(rows adapters.DBRows) (T, error),
) ([]T, error) {

	observer, ctx := s.startOperation(ctx, operation)

	sqlQuery, buildErr := s.buildSQL(ctx, operation, builder)
	if buildErr != nil {
		observer.finishError(errorTypeQueryBuild)
		return nil, buildErr
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		duration := time.Since(start)
		s.logQueryWithDuration(ctx, sqlQuery, operation, duration)
		errorType := s.classifyAndLogDBError(ctx, logMsgDBQueryFailed, queryErr, sqlQuery)
		observer.finishError(errorType)

		return nil, errors.Join(catalog.ErrQueryingFailed, queryErr)
	}
	defer s.closeRows(ctx, rows)

	results := make([]T, 0)
	for rows.Next() {
		result, scanErr := scan(rows)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr, logAttrOperation, operation)
			observer.finishError(errorTypeRowScan)

			return nil, errors.Join(catalog.ErrScanningDBRowFailed, scanErr)
		}

		results = append(results, result)
	}

	if iterErr := rows.Err(); iterErr != nil {
		errorType := s.classifyAndLogDBError(ctx, logMsgDBQueryFailed, iterErr, sqlQuery)
		observer.finishError(errorType)

		return nil, errors.Join(catalog.ErrQueryingFailed, iterErr)
	}

	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, operation, duration)
	observer.finishSuccess(len(results))

	return results, nil
}

// execute builds and runs a statement and returns the number of affected rows.
func (s *Store) execute(ctx context.Context, operation string, builder sqlBuilder) (int64, error) {
	observer, ctx := s.startOperation(ctx, operation)

	sqlQuery, buildErr := s.buildSQL(ctx, operation, builder)
	if buildErr != nil {
		observer.finishError(errorTypeQueryBuild)
		return 0, buildErr
	}

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, operation, time.Since(start))

	if execErr != nil {
		errorType := s.classifyAndLogDBError(ctx, logMsgDBExecFailed, execErr, sqlQuery)
		observer.finishError(errorType)

		return 0, errors.Join(catalog.ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr, logAttrOperation, operation)
		observer.finishError(errorTypeRowsAffected)

		return 0, errors.Join(catalog.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	observer.finishSuccess(int(rowsAffected))

	return rowsAffected, nil
}

func (s *Store) buildSQL(ctx context.Context, operation string, builder sqlBuilder) (sqlQueryString, error) {
	sqlQuery, _, err := builder.ToSQL()
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operation)
		return "", errors.Join(catalog.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// closeRows safely closes database rows and logs any errors.
func (s *Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// classifyAndLogDBError logs a failed statement and returns its error type for metrics and spans.
// Constraint violations are expected outcomes of conditional writes, so they are logged at warn level.
func (s *Store) classifyAndLogDBError(ctx context.Context, msg string, err error, sqlQuery string) string {
	if isPGCode(err, pgCodeUniqueViolation) || isPGCode(err, pgCodeForeignKeyViolation) {
		s.logWarn(ctx, logMsgConstraintViolation, logAttrError, err.Error())
		return errorTypeConstraint
	}

	s.logError(ctx, msg, err, logAttrQuery, sqlQuery)

	if msg == logMsgDBExecFailed {
		return errorTypeDatabaseExec
	}

	return errorTypeDatabaseQuery
}

// isPGCode reports whether err carries the given SQLSTATE code from either pgx or lib/pq.
func isPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}
