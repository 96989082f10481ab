package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	logActionCreateSchema = "create schema"
	logMsgSchemaCreated   = "schema created"
	logMsgSchemaFailed    = "creating the schema failed"
)

// CreateSchema creates the two tables and the borrow record index if they do not exist yet.
// It is meant for tests and demos; production databases are expected to be migrated separately.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, statement := range s.SchemaStatements() {
		start := time.Now()
		_, err := s.db.Exec(ctx, statement)
		s.logQueryWithDuration(ctx, statement, logActionCreateSchema, time.Since(start))

		if err != nil {
			s.logError(ctx, logMsgSchemaFailed, err)
			return errors.Join(catalog.ErrExecFailed, err)
		}
	}

	s.logOperation(ctx, logMsgSchemaCreated)

	return nil
}

// SchemaStatements returns the DDL the Store expects, one statement per element.
func (s *Store) SchemaStatements() []string {
	books := pgx.Identifier{s.booksTableName}.Sanitize()
	records := pgx.Identifier{s.borrowRecordsTableName}.Sanitize()
	recordsIndex := pgx.Identifier{s.borrowRecordsTableName + "_patron_book_idx"}.Sanitize()

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL UNIQUE,
	%s INTEGER NOT NULL CHECK (%s > 0),
	%s INTEGER NOT NULL,
	CHECK (%s BETWEEN 0 AND %s)
)`,
			books,
			colID,
			colTitle,
			colAuthor,
			colISBN,
			colTotalCopies, colTotalCopies,
			colAvailableCopies,
			colAvailableCopies, colTotalCopies,
		),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL PRIMARY KEY,
	%s TEXT NOT NULL,
	%s BIGINT NOT NULL REFERENCES %s (%s),
	%s TIMESTAMPTZ NOT NULL,
	%s TIMESTAMPTZ NOT NULL,
	%s TIMESTAMPTZ
)`,
			records,
			colID,
			colPatronID,
			colBookID, books, colID,
			colBorrowDate,
			colDueDate,
			colReturnDate,
		),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s, %s, %s DESC)`,
			recordsIndex, records, colPatronID, colBookID, colBorrowDate,
		),
	}
}
