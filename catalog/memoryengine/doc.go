// Package memoryengine provides an in-memory implementation of the catalog accessor contract.
//
// All state lives in maps and slices guarded by a single sync.RWMutex, so every
// accessor is atomic on its own. In particular AdjustBookAvailability is a
// conditional update just like the PostgreSQL engine's, which keeps concurrent
// borrows of the last copy from overselling it.
//
// The engine is meant for tests and demos. Nothing is persisted.
//
// Usage example:
//
//	store, _ := memoryengine.NewStore(memoryengine.WithLogger(logger))
//	book, _ := store.InsertBook(ctx, catalog.BuildNewBook("Dune", "Frank Herbert", "9780441172719", 3))
//	_ = store.AdjustBookAvailability(ctx, book.ID, -1)
package memoryengine
