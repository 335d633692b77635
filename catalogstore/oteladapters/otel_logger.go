package oteladapters

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
)

const attrBadKey = "!BADKEY"

// OTelLogger emits store logs as OpenTelemetry log records.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates a logger on the given OpenTelemetry logger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args)
}

func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args)
}

func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args)
}

func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args)
}

func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args []any) {
	var record log.Record
	record.SetTimestamp(time.Now())
	record.SetSeverity(severity)
	record.SetSeverityText(severity.String())
	record.SetBody(log.StringValue(msg))
	record.AddAttributes(keyValues(args)...)

	l.logger.Emit(ctx, record)
}

// keyValues converts slog style key/value pairs. A trailing value without a key is kept under !BADKEY.
func keyValues(args []any) []log.KeyValue {
	keyValues := make([]log.KeyValue, 0, (len(args)+1)/2)

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			keyValues = append(keyValues, log.KeyValue{Key: attrBadKey, Value: toValue(args[i])})
			i--

			continue
		}

		keyValues = append(keyValues, log.KeyValue{Key: key, Value: toValue(args[i+1])})
	}

	return keyValues
}

func toValue(value any) log.Value {
	switch v := value.(type) {
	case string:
		return log.StringValue(v)
	case int:
		return log.IntValue(v)
	case int64:
		return log.Int64Value(v)
	case float64:
		return log.Float64Value(v)
	case bool:
		return log.BoolValue(v)
	case time.Duration:
		return log.Int64Value(v.Milliseconds())
	case error:
		return log.StringValue(v.Error())
	default:
		return log.StringValue(fmt.Sprint(v))
	}
}

var _ catalogstore.ContextualLogger = (*OTelLogger)(nil)
