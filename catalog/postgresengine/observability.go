package postgresengine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	logMsgBuildQueryFailed    = "failed to build sql statement"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgConstraintViolation = "database constraint violated"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "catalogstore operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrOperation          = "operation"
	logAttrDurationMS         = "duration_ms"

	metricOperationDuration = "catalogstore_operation_duration_seconds"
	metricDatabaseErrors    = "catalogstore_database_errors_total"

	spanNamePrefix      = "catalogstore."
	spanAttrOperation   = "operation"
	spanAttrErrorType   = "error_type"
	spanAttrRowCount    = "row_count"
	spanAttrDurationMS  = "duration_ms"
	spanAttrConsistency = "consistency"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeQueryBuild    = "query_build"
	errorTypeDatabaseQuery = "database_query"
	errorTypeDatabaseExec  = "database_exec"
	errorTypeRowScan       = "row_scan"
	errorTypeRowsAffected  = "rows_affected"
	errorTypeConstraint    = "constraint_violation"
)

// operationObserver encapsulates metrics and tracing for one accessor call.
type operationObserver struct {
	s         *Store
	ctx       context.Context
	operation string
	span      catalog.SpanContext
	start     time.Time
}

// startOperation starts the tracing span and the timer for an accessor call.
func (s *Store) startOperation(ctx context.Context, operation string) (*operationObserver, context.Context) {
	spanCtx, span := s.startTraceSpan(ctx, spanNamePrefix+operation, map[string]string{
		spanAttrOperation:   operation,
		spanAttrConsistency: catalog.GetConsistencyLevel(ctx).String(),
	})

	return &operationObserver{
		s:         s,
		ctx:       spanCtx,
		operation: operation,
		span:      span,
		start:     time.Now(),
	}, spanCtx
}

// finishSuccess records the duration and completes the span with the number of rows read or written.
func (o *operationObserver) finishSuccess(rowCount int) {
	duration := time.Since(o.start)
	o.s.recordDurationMetricsContext(o.ctx, metricOperationDuration, duration, o.operation, statusSuccess)
	o.s.finishTraceSpan(o.span, statusSuccess, map[string]string{
		spanAttrRowCount:   strconv.Itoa(rowCount),
		spanAttrDurationMS: o.s.formatDurationMS(duration),
	})
}

// finishError records duration and error metrics and completes the span with the error type.
func (o *operationObserver) finishError(errorType string) {
	duration := time.Since(o.start)
	o.s.recordDurationMetricsContext(o.ctx, metricOperationDuration, duration, o.operation, statusError)
	o.s.recordErrorMetricsContext(o.ctx, o.operation, errorType)
	o.s.finishTraceSpan(o.span, statusError, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: o.s.formatDurationMS(duration),
	})
}

// recordDurationMetricsContext records duration metrics with context if the collector supports it.
func (s *Store) recordDurationMetricsContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if contextualCollector, ok := s.metricsCollector.(catalog.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricName, duration, labels)
}

// recordErrorMetricsContext records error metrics with context if the collector supports it.
func (s *Store) recordErrorMetricsContext(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := s.metricsCollector.(catalog.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (s *Store) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, catalog.SpanContext) {
	if s.tracingCollector != nil {
		return s.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (s *Store) finishTraceSpan(
	spanCtx catalog.SpanContext,
	status string,
	attrs map[string]string,
) {
	if s.tracingCollector != nil && spanCtx != nil {
		s.tracingCollector.FinishSpan(spanCtx, status, attrs)
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s *Store) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level.
func (s *Store) logWarn(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level.
func (s *Store) logError(
	ctx context.Context,
	message string,
	err error,
	args ...any,
) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Store) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (s *Store) formatDurationMS(d time.Duration) string {
	return fmt.Sprintf("%.2f", s.toMilliseconds(d))
}
