package catalog

import "context"

// ConsistencyLevel defines the consistency requirements for catalog reads.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database to ensure
	// read-after-write consistency. This is the default, because command handlers
	// check availability and open loans right before they write.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica database, trading consistency
	// for a reduced load on the primary. Suitable for pure query handlers like
	// catalog search or patron status reports.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "catalog.consistency_level"

// WithStrongConsistency returns a context that signals catalog reads
// must use the primary database.
//
// Example usage:
//
//	ctx = catalog.WithStrongConsistency(ctx)
//	book, err := store.FindBookByID(ctx, bookID)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals catalog reads
// may be served by a replica database.
//
// Example usage:
//
//	ctx = catalog.WithEventualConsistency(ctx)
//	books, err := store.SearchBooks(ctx, catalog.SearchByTitle, "go")
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If no consistency level is set, it returns StrongConsistency as the safe default.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
