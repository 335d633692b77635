package shell_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

func Test_ZapLogger_WritesLevelsAndFields(t *testing.T) {
	// arrange
	core, logs := observer.New(zapcore.DebugLevel)
	logger := shell.NewZapLogger(zap.New(core))

	// act
	logger.Debug("debug message", "query", "SELECT 1")
	logger.Warn("warn message")
	logger.InfoContext(context.Background(), "info message", "row_count", 3)

	// assert
	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "SELECT 1", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, 3, entries[2].ContextMap()["row_count"])
	assert.NotContains(t, entries[2].ContextMap(), "trace_id")
}

func Test_ZapLogger_AddsTraceIDsFromContext(t *testing.T) {
	// arrange
	core, logs := observer.New(zapcore.InfoLevel)
	logger := shell.NewZapLogger(zap.New(core))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	// act
	logger.ErrorContext(ctx, "failed", "error", "boom")

	// assert
	entry := logs.All()[0]
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry.ContextMap()["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry.ContextMap()["span_id"])
}
