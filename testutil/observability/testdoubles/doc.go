// Package testdoubles provides test doubles (spies) for the observability interfaces of the catalog.
//
//   - MetricsCollectorSpy: captures duration, counter and value records, with or without context
//   - TracingCollectorSpy: captures started and finished spans
//   - ContextualLoggerSpy: captures context-aware log calls
//   - LogHandlerSpy: a slog.Handler that captures records and their attributes
//
// Matchers are fluent and match if ANY captured record satisfies every condition in the chain.
package testdoubles
