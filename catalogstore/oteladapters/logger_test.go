package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/logtest"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/oteladapters"
)

func records(recorder *logtest.Recorder) []logtest.Record {
	var all []logtest.Record
	for _, scoped := range recorder.Result() {
		all = append(all, scoped...)
	}

	return all
}

func Test_SlogBridgeLogger_WithHandler_WritesAllLevels(t *testing.T) {
	// setup
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.Debug("plain debug", "row_count", 3)
	logger.InfoContext(ctx, "contextual info", "operation", "get_book")
	logger.Warn("plain warn")
	logger.ErrorContext(ctx, "contextual error")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"msg":"plain debug"`)
	assert.Contains(t, output, `"row_count":3`)
	assert.Contains(t, output, `"operation":"get_book"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
}

func Test_SlogBridgeLogger_CorrelatesWithTheActiveSpan(t *testing.T) {
	// setup
	recorder := logtest.NewRecorder()
	logger := oteladapters.NewSlogBridgeLogger("catalogstore", otelslog.WithLoggerProvider(recorder))
	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	ctx, span := provider.Tracer("test").Start(context.Background(), "catalogstore.get_book")
	defer span.End()

	// act
	logger.InfoContext(ctx, "catalogstore operation: get_book", "row_count", 1)

	// assert
	all := records(recorder)
	require.Len(t, all, 1)
	assert.Equal(t, log.SeverityInfo, all[0].Severity)
	assert.Equal(t, "catalogstore operation: get_book", all[0].Body.AsString())
	assert.Equal(t, span.SpanContext().TraceID(), trace.SpanContextFromContext(all[0].Context).TraceID())
}

func Test_OTelLogger_EmitsTypedAttributes(t *testing.T) {
	// setup
	recorder := logtest.NewRecorder()
	logger := oteladapters.NewOTelLogger(recorder.Logger("catalogstore"))

	// act
	logger.WarnContext(context.Background(), "failed to close rows",
		"error", errors.New("boom"),
		"row_count", 2,
		"duration_ms", 1.5,
		"dangling",
	)

	// assert
	all := records(recorder)
	require.Len(t, all, 1)
	assert.Equal(t, log.SeverityWarn, all[0].Severity)
	assert.Equal(t, "WARN", all[0].SeverityText)
	expected := []log.KeyValue{
		log.String("error", "boom"),
		log.Int("row_count", 2),
		log.Float64("duration_ms", 1.5),
		log.String("!BADKEY", "dangling"),
	}
	require.Len(t, all[0].Attributes, len(expected))
	for i, kv := range expected {
		assert.True(t, kv.Equal(all[0].Attributes[i]), "%s != %s", kv, all[0].Attributes[i])
	}
}

func Test_OTelLogger_AllLevels(t *testing.T) {
	// setup
	recorder := logtest.NewRecorder()
	logger := oteladapters.NewOTelLogger(recorder.Logger("catalogstore"))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug")
	logger.InfoContext(ctx, "info")
	logger.WarnContext(ctx, "warn")
	logger.ErrorContext(ctx, "error")

	// assert
	var severities []log.Severity
	for _, record := range records(recorder) {
		severities = append(severities, record.Severity)
	}
	assert.Equal(t, []log.Severity{log.SeverityDebug, log.SeverityInfo, log.SeverityWarn, log.SeverityError}, severities)
}
