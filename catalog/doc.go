// Package catalog provides the core types and accessor contracts for persisting
// a library catalog: books, their copy availability, and patron borrow records.
//
// This package defines the storage-independent building blocks that the different
// engine implementations share, including the domain records, the closed search
// field enumeration, consistency routing and common error definitions.
//
// Key types:
//   - Book: A cataloged title with its total and currently available copies
//   - BorrowRecord: One loan of a book to a patron, open until returned
//   - PatronLoan: A BorrowRecord joined with its book's title and author
//   - SearchField: The closed set of catalog search kinds (title, author, isbn)
//
// Engines:
//   - postgresengine: PostgreSQL storage with pgx, database/sql and sqlx adapters
//   - memoryengine: Mutex-guarded in-memory storage for tests and demos
//
// Common usage pattern:
//
//	book, err := store.FindBookByID(ctx, bookID)
//	if errors.Is(err, catalog.ErrBookNotFound) {
//		// handle unknown book
//	}
//
//	// decrement iff a copy is available, atomically
//	err = store.AdjustBookAvailability(ctx, book.ID, -1)
//	if errors.Is(err, catalog.ErrAvailabilityOutOfRange) {
//		// the last copy was taken concurrently
//	}
package catalog
