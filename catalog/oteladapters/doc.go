// Package oteladapters provides OpenTelemetry implementations of the catalog observability interfaces.
//
// The catalog engines and the library's handler wrappers only depend on the small interfaces declared
// in package catalog. This package plugs them into an OpenTelemetry setup:
//
//   - TracingCollector wraps a trace.Tracer
//   - MetricsCollector wraps a metric.Meter and creates instruments on demand
//   - SlogBridgeLogger and OTelLogger implement catalog.ContextualLogger with trace correlation
//
// Example:
//
//	tracer := otel.Tracer("library-catalog")
//	meter := otel.Meter("library-catalog")
//
//	store, err := postgresengine.NewStoreFromPGXPool(
//		pool,
//		postgresengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("library-catalog")),
//	)
package oteladapters
