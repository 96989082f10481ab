// Package adapters provide database adapter implementations for the PostgreSQL catalog engine.
//
// Three PostgreSQL client libraries are supported: pgx.Pool, sql.DB and sqlx.DB.
// Each adapter presents the same DBAdapter interface, so the engine builds its SQL once
// and runs it on whichever connection type the caller owns.
//
// The pgx adapter can additionally route reads to a replica pool, driven by the
// consistency level carried in the context (see catalog.WithEventualConsistency).
package adapters
