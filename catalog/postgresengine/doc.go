// Package postgresengine provides a PostgreSQL implementation of the catalog.Store interface.
//
// Books and borrow records live in two tables (defaults "books" and "borrow_records").
// All SQL is built with goqu and runs through one of three database adapters (pgx, sql.DB, sqlx).
//
// Key features:
//   - Conditional availability updates, so concurrent borrows can never oversell the last copy
//   - Conditional closing of borrow records, so a loan is never returned twice
//   - Optional replica routing for reads that allow eventual consistency (pgx only)
//   - Optional logging, metrics and tracing through dependency-free interfaces
//
// Usage examples:
//
//	pool, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(pool)
//	_ = store.CreateSchema(ctx)
//
//	// With a replica and contextual logging
//	store, _ := postgresengine.NewStoreFromPGXPoolAndReplica(
//		primary,
//		replica,
//		postgresengine.WithContextualLogger(logger),
//	)
//
//	ctx = catalog.WithEventualConsistency(ctx) // served by the replica
//	books, _ := store.SearchBooks(ctx, catalog.SearchByTitle, "go")
package postgresengine
