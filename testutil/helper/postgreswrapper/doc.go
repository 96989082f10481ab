// Package postgreswrapper provides test utilities for running the PostgreSQL catalog engine
// against each supported database adapter.
//
// The adapter is picked with the ADAPTER_TYPE environment variable: "pgx.pool" (default),
// "sql.db" or "sqlx.db". Tests are skipped, not failed, when the test database is unreachable,
// so the unit test suite runs without Docker.
//
// Usage:
//
//	wrapper := CreateWrapperWithTestConfig(t)
//	defer wrapper.Close()
//
//	CleanUp(t, wrapper)
//	store := wrapper.GetStore()
package postgreswrapper
