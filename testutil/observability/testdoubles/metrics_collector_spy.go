package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MetricKind distinguishes the three kinds of metric calls.
type MetricKind string

const (
	KindDuration MetricKind = "duration"
	KindCounter  MetricKind = "counter"
	KindValue    MetricKind = "value"
)

// SpyMetricRecord represents one captured metric call.
type SpyMetricRecord struct {
	Kind        MetricKind
	Metric      string
	Duration    time.Duration
	Value       float64
	Labels      map[string]string
	WithContext bool
}

// MetricsCollectorSpy implements catalog.ContextualMetricsCollector and captures every call.
type MetricsCollectorSpy struct {
	records     []SpyMetricRecord
	mu          sync.Mutex
	recordCalls bool
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to false to get a no-op collector.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{recordCalls: recordCalls}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.capture(SpyMetricRecord{Kind: KindDuration, Metric: metric, Duration: duration, Labels: labels})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.capture(SpyMetricRecord{Kind: KindCounter, Metric: metric, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.capture(SpyMetricRecord{Kind: KindValue, Metric: metric, Value: value, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.capture(SpyMetricRecord{Kind: KindDuration, Metric: metric, Duration: duration, Labels: labels, WithContext: true})
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.capture(SpyMetricRecord{Kind: KindCounter, Metric: metric, Labels: labels, WithContext: true})
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.capture(SpyMetricRecord{Kind: KindValue, Metric: metric, Value: value, Labels: labels, WithContext: true})
}

func (s *MetricsCollectorSpy) capture(record SpyMetricRecord) {
	if !s.recordCalls {
		return
	}

	record.Labels = maps.Clone(record.Labels) // callers may reuse their maps

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
}

// GetRecords returns a copy of all captured records of the given kind.
func (s *MetricsCollectorSpy) GetRecords(kind MetricKind) []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make([]SpyMetricRecord, 0)
	for _, record := range s.records {
		if record.Kind == kind {
			found = append(found, record)
		}
	}

	return found
}

// CountDurationRecordsForMetric counts the duration records of a metric.
func (s *MetricsCollectorSpy) CountDurationRecordsForMetric(metric string) int {
	return len(s.matching(KindDuration, metric))
}

// CountCounterRecordsForMetric counts the counter records of a metric.
func (s *MetricsCollectorSpy) CountCounterRecordsForMetric(metric string) int {
	return len(s.matching(KindCounter, metric))
}

// HasDurationRecordForMetric starts a fluent chain over the duration records of a metric.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return &MetricRecordMatcher{candidates: s.matching(KindDuration, metric)}
}

// HasCounterRecordForMetric starts a fluent chain over the counter records of a metric.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return &MetricRecordMatcher{candidates: s.matching(KindCounter, metric)}
}

// HasValueRecordForMetric starts a fluent chain over the value records of a metric.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	return &MetricRecordMatcher{candidates: s.matching(KindValue, metric)}
}

// Reset clears all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

func (s *MetricsCollectorSpy) matching(kind MetricKind, metric string) []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make([]SpyMetricRecord, 0)
	for _, record := range s.records {
		if record.Kind == kind && record.Metric == metric {
			found = append(found, record)
		}
	}

	return found
}

// MetricRecordMatcher narrows down candidate records in a fluent chain.
type MetricRecordMatcher struct {
	candidates []SpyMetricRecord
}

// WithLabel keeps the records that carry the label with the given value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if labelValue, ok := record.Labels[key]; ok && labelValue == value {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// WithStatus keeps the records with the given status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithOperation keeps the records with the given operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// WithErrorType keeps the records with the given error_type label.
func (m *MetricRecordMatcher) WithErrorType(errorType string) *MetricRecordMatcher {
	return m.WithLabel("error_type", errorType)
}

// WithContext keeps the records captured through the context-aware methods.
func (m *MetricRecordMatcher) WithContext() *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if record.WithContext {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// Assert returns true if at least one record satisfied the whole chain.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
