package oteladapters_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-catalog-go/catalog/oteladapters"
)

func Test_MetricsCollector_RecordDuration_RecordsSecondsInHistogram(t *testing.T) {
	// setup
	reader, collector := newMetricsCollector(t)

	// act
	collector.RecordDuration("catalogstore_operation_duration_seconds", 150*time.Millisecond, map[string]string{
		"operation": "search_books",
		"status":    "success",
	})

	// assert
	histogram := findHistogramMetric(t, collect(t, reader), "catalogstore_operation_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)
	assertHasAttribute(t, histogram.DataPoints[0].Attributes, "operation", "search_books")
	assertHasAttribute(t, histogram.DataPoints[0].Attributes, "status", "success")
}

func Test_MetricsCollector_IncrementCounter_AddsOnePerCall(t *testing.T) {
	// setup
	reader, collector := newMetricsCollector(t)
	labels := map[string]string{"handler": "borrow_book", "outcome": "not_found"}

	// act
	collector.IncrementCounter("commandhandler_rejections_total", labels)
	collector.IncrementCounterContext(context.Background(), "commandhandler_rejections_total", labels)

	// assert
	counter := findCounterMetric(t, collect(t, reader), "commandhandler_rejections_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(2), counter.DataPoints[0].Value)
	assertHasAttribute(t, counter.DataPoints[0].Attributes, "outcome", "not_found")
}

func Test_MetricsCollector_RecordValue_KeepsLastValueInGauge(t *testing.T) {
	// setup
	reader, collector := newMetricsCollector(t)

	// act
	collector.RecordValue("patron_open_loans", 3, nil)
	collector.RecordValueContext(context.Background(), "patron_open_loans", 4, nil)

	// assert
	gauge := findGaugeMetric(t, collect(t, reader), "patron_open_loans")
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 4.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_ConcurrentUse_RecordsEveryMeasurement(t *testing.T) {
	// setup
	reader, collector := newMetricsCollector(t)
	workers := 20

	// act
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.IncrementCounterContext(context.Background(), "commandhandler_handle_calls_total", nil)
		}()
	}
	wg.Wait()

	// assert
	counter := findCounterMetric(t, collect(t, reader), "commandhandler_handle_calls_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(workers), counter.DataPoints[0].Value)
}

func Test_MetricsCollector_DropsMeasurement_WhenInstrumentCannotBeCreated(t *testing.T) {
	// setup
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	collector := oteladapters.NewMetricsCollector(&failingMeter{Meter: provider.Meter("library-catalog-test")})
	ctx := context.Background()

	// act & assert
	assert.NotPanics(t, func() {
		collector.RecordDuration("broken", time.Second, nil)
		collector.RecordDurationContext(ctx, "broken", time.Second, nil)
		collector.IncrementCounter("broken", nil)
		collector.IncrementCounterContext(ctx, "broken", nil)
		collector.RecordValue("broken", 1, nil)
		collector.RecordValueContext(ctx, "broken", 1, nil)
	})
}

// failingMeter refuses every instrument, like a meter would for invalid instrument names.
type failingMeter struct {
	metric.Meter
}

func (m *failingMeter) Float64Histogram(string, ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	return nil, errors.New("histogram creation failed")
}

func (m *failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("counter creation failed")
}

func (m *failingMeter) Float64Gauge(string, ...metric.Float64GaugeOption) (metric.Float64Gauge, error) {
	return nil, errors.New("gauge creation failed")
}

func newMetricsCollector(t *testing.T) (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return reader, oteladapters.NewMetricsCollector(provider.Meter("library-catalog-test"))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func findMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	histogram, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Histogram[float64])
	require.True(t, ok, "metric %s is not a float64 histogram", name)

	return histogram
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	counter, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", name)

	return counter
}

func findGaugeMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Gauge[float64] {
	t.Helper()

	gauge, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Gauge[float64])
	require.True(t, ok, "metric %s is not a float64 gauge", name)

	return gauge
}

func assertHasAttribute(t *testing.T, set attribute.Set, key, expectedValue string) {
	t.Helper()

	value, ok := set.Value(attribute.Key(key))
	require.True(t, ok, "attribute %s missing", key)
	assert.Equal(t, expectedValue, value.AsString())
}
