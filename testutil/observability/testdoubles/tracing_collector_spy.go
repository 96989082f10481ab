package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// SpySpanContext implements catalog.SpanContext and keeps what was set on it.
type SpySpanContext struct {
	name       string
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attributes[key] = value
}

// GetName returns the span name.
func (c *SpySpanContext) GetName() string {
	return c.name
}

// GetStatus returns the last status set on the span.
func (c *SpySpanContext) GetStatus() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// GetAttributes returns a copy of all attributes of the span.
func (c *SpySpanContext) GetAttributes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return maps.Clone(c.attributes)
}

// SpySpanRecord represents a started span and, once finished, its final state.
type SpySpanRecord struct {
	Name       string
	Status     string
	Attributes map[string]string
	Finished   bool
	span       *SpySpanContext
}

// TracingCollectorSpy implements catalog.TracingCollector and captures every span.
type TracingCollectorSpy struct {
	spanRecords []SpySpanRecord
	mu          sync.Mutex
	recordCalls bool
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy(recordCalls bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{recordCalls: recordCalls}
}

// StartSpan records a new span with its start attributes.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, catalog.SpanContext) {
	span := &SpySpanContext{name: name, attributes: maps.Clone(attrs)}
	if span.attributes == nil {
		span.attributes = make(map[string]string)
	}

	if s.recordCalls {
		s.mu.Lock()
		s.spanRecords = append(s.spanRecords, SpySpanRecord{Name: name, span: span})
		s.mu.Unlock()
	}

	return ctx, span
}

// FinishSpan merges the finish attributes into the span and marks it finished.
func (s *TracingCollectorSpy) FinishSpan(spanCtx catalog.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	span.SetStatus(status)
	for key, value := range attrs {
		span.AddAttribute(key, value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spanRecords {
		if s.spanRecords[i].span == span {
			s.spanRecords[i].Finished = true
		}
	}
}

// GetSpanRecords returns a snapshot of all spans.
func (s *TracingCollectorSpy) GetSpanRecords() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpySpanRecord, 0, len(s.spanRecords))
	for _, record := range s.spanRecords {
		record.Status = record.span.GetStatus()
		record.Attributes = record.span.GetAttributes()
		records = append(records, record)
	}

	return records
}

// GetSpanRecordCount returns the number of started spans.
func (s *TracingCollectorSpy) GetSpanRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.spanRecords)
}

// HasSpanRecordForName starts a fluent chain over the finished spans with the given name.
func (s *TracingCollectorSpy) HasSpanRecordForName(name string) *SpanRecordMatcher {
	candidates := make([]SpySpanRecord, 0)
	for _, record := range s.GetSpanRecords() {
		if record.Name == name && record.Finished {
			candidates = append(candidates, record)
		}
	}

	return &SpanRecordMatcher{candidates: candidates}
}

// SpanRecordMatcher narrows down candidate spans in a fluent chain.
type SpanRecordMatcher struct {
	candidates []SpySpanRecord
}

// WithStatus keeps the spans that finished with the given status.
func (m *SpanRecordMatcher) WithStatus(status string) *SpanRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if record.Status == status {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// WithAttribute keeps the spans that carry the attribute with the given value.
func (m *SpanRecordMatcher) WithAttribute(key, value string) *SpanRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if attrValue, ok := record.Attributes[key]; ok && attrValue == value {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// WithAttributeKey keeps the spans that carry the attribute, whatever its value.
func (m *SpanRecordMatcher) WithAttributeKey(key string) *SpanRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if _, ok := record.Attributes[key]; ok {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// Assert returns true if at least one span satisfied the whole chain.
func (m *SpanRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
