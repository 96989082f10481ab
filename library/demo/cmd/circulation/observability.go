package main

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-catalog-go/catalog/oteladapters"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/observable"
)

const instrumentationName = "library-circulation-demo"

// observers bundles what the handlers and the engine report to.
// Metrics and tracing are nil unless observability is enabled.
type observers struct {
	contextualLogger shell.ContextualLogger
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector
	shutdown         func() error
}

func newObservers(ctx context.Context, cfg Config, handler slog.Handler) (observers, error) {
	obs := observers{
		contextualLogger: oteladapters.NewSlogBridgeLoggerWithHandler(handler),
		shutdown:         func() error { return nil },
	}

	if !cfg.ObservabilityEnabled {
		return obs, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, serviceVersion)
	if err != nil {
		return observers{}, err
	}

	obs.metrics = oteladapters.NewMetricsCollector(otel.Meter(instrumentationName))
	obs.tracing = oteladapters.NewTracingCollector(otel.Tracer(instrumentationName))
	obs.shutdown = providers.Shutdown

	return obs, nil
}

func wrapCommand[C shell.Command](handler shell.CommandHandler[C], obs observers) (*observable.CommandWrapper[C], error) {
	options := []observable.CommandOption[C]{observable.WithCommandContextualLogging[C](obs.contextualLogger)}

	if obs.metrics != nil {
		options = append(options, observable.WithCommandMetrics[C](obs.metrics))
	}

	if obs.tracing != nil {
		options = append(options, observable.WithCommandTracing[C](obs.tracing))
	}

	return observable.NewCommandWrapper[C](handler, options...)
}

func wrapQuery[Q shell.Query, R any](handler shell.QueryHandler[Q, R], obs observers) (*observable.QueryWrapper[Q, R], error) {
	options := []observable.QueryOption[Q, R]{observable.WithQueryContextualLogging[Q, R](obs.contextualLogger)}

	if obs.metrics != nil {
		options = append(options, observable.WithQueryMetrics[Q, R](obs.metrics))
	}

	if obs.tracing != nil {
		options = append(options, observable.WithQueryTracing[Q, R](obs.tracing))
	}

	return observable.NewQueryWrapper[Q, R](handler, options...)
}
