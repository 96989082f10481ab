package postgresengine

import (
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithBooksTableName sets the books table name for the Store.
func WithBooksTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return catalog.ErrEmptyTableNameSupplied
		}

		s.booksTableName = tableName

		return nil
	}
}

// WithBorrowRecordsTableName sets the borrow records table name for the Store.
func WithBorrowRecordsTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return catalog.ErrEmptyTableNameSupplied
		}

		s.borrowRecordsTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Operation summaries like inserted books or closed borrow records (production-safe)
// Warn level: Non-critical issues like cleanup failures and refused availability changes
// Error level: Critical failures that cause operation failures.
func WithLogger(logger catalog.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives operation durations and database error counts, labeled by operation and status.
func WithMetrics(collector catalog.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// Every accessor call becomes one span named "catalogstore.<operation>".
func WithTracing(collector catalog.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It receives the same messages as the Logger, with context for trace correlation.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}
