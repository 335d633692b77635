package shell

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	logAttrTraceID = "trace_id"
	logAttrSpanID  = "span_id"
)

// ZapLogger adapts a zap logger to Logger and ContextualLogger.
// The contextual methods add trace and span ids when ctx carries a valid span.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps the given zap logger.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapLogger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Debugw(msg, withTraceIDs(ctx, args)...)
}

func (l *ZapLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Infow(msg, withTraceIDs(ctx, args)...)
}

func (l *ZapLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Warnw(msg, withTraceIDs(ctx, args)...)
}

func (l *ZapLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.sugar.Errorw(msg, withTraceIDs(ctx, args)...)
}

// Sync flushes buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

func withTraceIDs(ctx context.Context, args []any) []any {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return args
	}

	return append(
		append([]any(nil), args...),
		logAttrTraceID, spanContext.TraceID().String(),
		logAttrSpanID, spanContext.SpanID().String(),
	)
}

var (
	_ Logger           = (*ZapLogger)(nil)
	_ ContextualLogger = (*ZapLogger)(nil)
)
