package testdoubles

import (
	"context"
	"sync"
)

// SpyContextualLogRecord represents one captured contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy implements catalog.ContextualLogger and captures every call.
type ContextualLoggerSpy struct {
	records     []SpyContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.capture(ctx, "debug", msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.capture(ctx, "info", msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.capture(ctx, "warn", msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.capture(ctx, "error", msg, args)
}

func (s *ContextualLoggerSpy) capture(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// GetRecords returns a copy of all captured records of the given level.
func (s *ContextualLoggerSpy) GetRecords(level string) []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make([]SpyContextualLogRecord, 0)
	for _, record := range s.records {
		if record.Level == level {
			found = append(found, record)
		}
	}

	return found
}

// GetInfoRecords returns the captured info records.
func (s *ContextualLoggerSpy) GetInfoRecords() []SpyContextualLogRecord {
	return s.GetRecords("info")
}

// GetErrorRecords returns the captured error records.
func (s *ContextualLoggerSpy) GetErrorRecords() []SpyContextualLogRecord {
	return s.GetRecords("error")
}

// GetTotalRecordCount returns the number of captured records over all levels.
func (s *ContextualLoggerSpy) GetTotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// HasDebugLog reports whether a debug record with exactly this message was captured.
func (s *ContextualLoggerSpy) HasDebugLog(msg string) bool {
	return s.hasLog("debug", msg)
}

// HasInfoLog reports whether an info record with exactly this message was captured.
func (s *ContextualLoggerSpy) HasInfoLog(msg string) bool {
	return s.hasLog("info", msg)
}

// HasWarnLog reports whether a warn record with exactly this message was captured.
func (s *ContextualLoggerSpy) HasWarnLog(msg string) bool {
	return s.hasLog("warn", msg)
}

// HasErrorLog reports whether an error record with exactly this message was captured.
func (s *ContextualLoggerSpy) HasErrorLog(msg string) bool {
	return s.hasLog("error", msg)
}

// HasArg reports whether any record of the level and message carries the key with the value.
func (s *ContextualLoggerSpy) HasArg(level, msg, key string, value any) bool {
	for _, record := range s.GetRecords(level) {
		if record.Message != msg {
			continue
		}

		for i := 0; i+1 < len(record.Args); i += 2 {
			if record.Args[i] == key && record.Args[i+1] == value {
				return true
			}
		}
	}

	return false
}

func (s *ContextualLoggerSpy) hasLog(level, msg string) bool {
	for _, record := range s.GetRecords(level) {
		if record.Message == msg {
			return true
		}
	}

	return false
}
