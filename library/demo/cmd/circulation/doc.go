// Command circulation runs a short day at the library desk against the in-memory engine or PostgreSQL:
// books are added and searched, patrons borrow and return copies, an overdue fee is paid and partly
// refunded, and the final patron report and payment ledger are printed as JSON.
//
// Usage:
//
//	go run ./library/demo/cmd/circulation -engine=memory
//	ADAPTER_TYPE=sqlx.db go run ./library/demo/cmd/circulation -engine=postgres -observability-enabled
package main
