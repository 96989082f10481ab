package testdoubles

import (
	"context"
	"log/slog"
	"sync"
)

// SpyLogRecord represents one captured slog record.
type SpyLogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogHandlerSpy is a slog.Handler capturing every record at or above its minimum level.
// Use it as slog.New(spy) wherever a catalog.Logger or catalog.ContextualLogger is expected.
type LogHandlerSpy struct {
	state    *logHandlerState
	attrs    []slog.Attr
	minLevel slog.Level
}

type logHandlerState struct {
	records []SpyLogRecord
	mu      sync.Mutex
}

// NewLogHandlerSpy creates a LogHandlerSpy. With debugEnabled false, debug records are dropped.
func NewLogHandlerSpy(debugEnabled bool) *LogHandlerSpy {
	minLevel := slog.LevelInfo
	if debugEnabled {
		minLevel = slog.LevelDebug
	}

	return &LogHandlerSpy{state: &logHandlerState{}, minLevel: minLevel}
}

func (h *LogHandlerSpy) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

func (h *LogHandlerSpy) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, record.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		attrs[attr.Key] = attr.Value.Any()
	}

	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	h.state.records = append(h.state.records, SpyLogRecord{Level: record.Level, Message: record.Message, Attrs: attrs})

	return nil
}

func (h *LogHandlerSpy) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &LogHandlerSpy{state: h.state, attrs: combined, minLevel: h.minLevel}
}

// WithGroup is not needed by the code under test, groups are flattened.
func (h *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return h
}

// GetRecords returns a copy of all captured records.
func (h *LogHandlerSpy) GetRecords() []SpyLogRecord {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	return append([]SpyLogRecord{}, h.state.records...)
}

// GetRecordCount returns the number of captured records.
func (h *LogHandlerSpy) GetRecordCount() int {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	return len(h.state.records)
}

// HasDebugLog reports whether a debug record with exactly this message was captured.
func (h *LogHandlerSpy) HasDebugLog(msg string) bool {
	return h.HasLogWithMessage(slog.LevelDebug, msg).Assert()
}

// HasInfoLog reports whether an info record with exactly this message was captured.
func (h *LogHandlerSpy) HasInfoLog(msg string) bool {
	return h.HasLogWithMessage(slog.LevelInfo, msg).Assert()
}

// HasWarnLog reports whether a warn record with exactly this message was captured.
func (h *LogHandlerSpy) HasWarnLog(msg string) bool {
	return h.HasLogWithMessage(slog.LevelWarn, msg).Assert()
}

// HasErrorLog reports whether an error record with exactly this message was captured.
func (h *LogHandlerSpy) HasErrorLog(msg string) bool {
	return h.HasLogWithMessage(slog.LevelError, msg).Assert()
}

// HasLogWithMessage starts a fluent chain over the records with the level and message.
func (h *LogHandlerSpy) HasLogWithMessage(level slog.Level, msg string) *LogRecordMatcher {
	candidates := make([]SpyLogRecord, 0)
	for _, record := range h.GetRecords() {
		if record.Level == level && record.Message == msg {
			candidates = append(candidates, record)
		}
	}

	return &LogRecordMatcher{candidates: candidates}
}

// LogRecordMatcher narrows down candidate log records in a fluent chain.
type LogRecordMatcher struct {
	candidates []SpyLogRecord
}

// WithAttr keeps the records carrying the attribute, whatever its value.
func (m *LogRecordMatcher) WithAttr(key string) *LogRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if _, ok := record.Attrs[key]; ok {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// WithAttrValue keeps the records carrying the attribute with the value.
func (m *LogRecordMatcher) WithAttrValue(key string, value any) *LogRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if attrValue, ok := record.Attrs[key]; ok && attrValue == value {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// Assert returns true if at least one record satisfied the whole chain.
func (m *LogRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
