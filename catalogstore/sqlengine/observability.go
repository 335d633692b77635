package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
)

const (
	metricOperationDuration   = "catalogstore_operation_duration_seconds"
	metricRowsReturned        = "catalogstore_rows_returned"
	metricDatabaseErrors      = "catalogstore_database_errors_total"
	metricConcurrencyConflict = "catalogstore_concurrency_conflicts_total"

	spanNamePrefix      = "catalogstore."
	spanAttrOperation   = "operation"
	spanAttrDialect     = "db.dialect"
	spanAttrErrorType   = "error_type"
	spanAttrRowCount    = "row_count"
	spanAttrDurationMS  = "duration_ms"
	spanAttrConsistency = "consistency_level"
	statusSuccess       = "success"
	statusError         = "error"
	errorTypeCanceled   = "canceled"
	errorTypeTimeout    = "timeout"
	labelStatus         = "status"
	labelConflictType   = "conflict_type"
	conflictTypeVersion = "version"
)

// operation encapsulates the tracing span and metrics lifecycle of one store operation.
// It finishes at most once, later calls are no-ops.
type operation struct {
	e        *Engine
	ctx      context.Context
	name     string
	span     catalogstore.SpanContext
	start    time.Time
	finished bool
}

// startOperation starts tracing for a store operation and returns the derived context.
func (e *Engine) startOperation(ctx context.Context, name string, attrs map[string]string) (*operation, context.Context) {
	spanAttrs := map[string]string{
		spanAttrOperation:   name,
		spanAttrDialect:     e.dialectName,
		spanAttrConsistency: catalogstore.GetConsistencyLevel(ctx).String(),
	}
	for key, value := range attrs {
		spanAttrs[key] = value
	}

	var span catalogstore.SpanContext
	if e.tracingCollector != nil {
		ctx, span = e.tracingCollector.StartSpan(ctx, spanNamePrefix+name, spanAttrs)
	}

	return &operation{
		e:     e,
		ctx:   ctx,
		name:  name,
		span:  span,
		start: time.Now(),
	}, ctx
}

// finishSuccess records duration and row count and completes the span.
func (op *operation) finishSuccess(rowCount int) {
	if op.finished {
		return
	}
	op.finished = true

	duration := time.Since(op.start)
	op.e.recordDuration(op.ctx, duration, op.name, statusSuccess)
	op.e.recordValue(op.ctx, metricRowsReturned, float64(rowCount), op.name, statusSuccess)
	op.e.logOperation(op.ctx, op.name, logAttrRowCount, rowCount, logAttrDurationMS, toMilliseconds(duration))

	if op.span != nil {
		op.span.SetStatus(statusSuccess)
		op.span.AddAttribute(spanAttrRowCount, fmt.Sprintf("%d", rowCount))
		op.span.AddAttribute(spanAttrDurationMS, formatMilliseconds(duration))
		op.e.tracingCollector.FinishSpan(op.span, statusSuccess, map[string]string{
			spanAttrRowCount: fmt.Sprintf("%d", rowCount),
		})
	}
}

// finishError records an error of the given type and completes the span.
func (op *operation) finishError(errorType string) {
	if op.finished {
		return
	}
	op.finished = true

	duration := time.Since(op.start)
	op.e.recordDuration(op.ctx, duration, op.name, statusError)
	op.e.recordError(op.ctx, op.name, errorType)

	if op.span != nil {
		op.span.SetStatus(statusError)
		op.span.AddAttribute(spanAttrErrorType, errorType)
		op.span.AddAttribute(spanAttrDurationMS, formatMilliseconds(duration))
		op.e.tracingCollector.FinishSpan(op.span, statusError, map[string]string{
			spanAttrErrorType: errorType,
		})
	}
}

// finishConflict records an optimistic concurrency conflict.
func (op *operation) finishConflict() {
	if op.finished {
		return
	}

	op.e.incrementCounter(op.ctx, metricConcurrencyConflict, map[string]string{
		spanAttrOperation: op.name,
		labelConflictType: conflictTypeVersion,
	})
	op.finishError(errorTypeConcurrency)
}

// classifyDatabaseError maps context cancellation and deadlines to their own error types.
func classifyDatabaseError(ctx context.Context, err error, fallback string) string {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errorTypeTimeout
	default:
		return fallback
	}
}

func (e *Engine) recordDuration(ctx context.Context, duration time.Duration, operationName, status string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operationName, labelStatus: status}
	if contextual, ok := e.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	e.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (e *Engine) recordValue(ctx context.Context, metric string, value float64, operationName, status string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operationName, labelStatus: status}
	if contextual, ok := e.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	e.metricsCollector.RecordValue(metric, value, labels)
}

func (e *Engine) recordError(ctx context.Context, operationName, errorType string) {
	e.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operationName,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

func (e *Engine) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if e.metricsCollector == nil {
		return
	}

	if contextual, ok := e.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	e.metricsCollector.IncrementCounter(metric, labels)
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (e *Engine) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, args...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (e *Engine) logOperation(ctx context.Context, action string, args ...any) {
	if e.logger != nil {
		e.logger.Info(logMsgOperation+action, args...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logWarn logs recoverable problems, e.g. failing to close rows.
func (e *Engine) logWarn(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if e.logger != nil {
		e.logger.Warn(message, allArgs...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, message, allArgs...)
	}
}

// logError logs failures at error level.
func (e *Engine) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if e.logger != nil {
		e.logger.Error(message, allArgs...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(d))
}
