package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/oteladapters"
	"github.com/AntonStoeckl/library-catalog-go/testutil/observability/testdoubles"
)

func newTracingCollector(t *testing.T) (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func attributeValue(attrs []attribute.KeyValue, key string) (string, bool) {
	for _, attr := range attrs {
		if string(attr.Key) == key {
			return attr.Value.AsString(), true
		}
	}

	return "", false
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// setup
	collector, exporter := newTracingCollector(t)

	// act
	ctx, span := collector.StartSpan(context.Background(), "catalogstore.get_book", map[string]string{"operation": "get_book"})
	span.AddAttribute("row_count", "1")
	collector.FinishSpan(span, "success", map[string]string{"duration_ms": "0.12"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "catalogstore.get_book", spans[0].Name)
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	for key, expected := range map[string]string{"operation": "get_book", "row_count": "1", "duration_ms": "0.12"} {
		value, found := attributeValue(spans[0].Attributes, key)
		assert.True(t, found, key)
		assert.Equal(t, expected, value, key)
	}
}

func Test_TracingCollector_MapsStatus(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: "error", expectedCode: codes.Error},
		{status: "canceled", expectedCode: codes.Error},
		{status: "timeout", expectedCode: codes.Error},
		{status: "concurrency_conflict", expectedCode: codes.Error},
		{status: "whatever", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// setup
			collector, exporter := newTracingCollector(t)

			// act
			_, span := collector.StartSpan(context.Background(), "catalogstore.update_book_copy", nil)
			collector.FinishSpan(span, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)

			if tc.expectedCode == codes.Unset {
				value, found := attributeValue(spans[0].Attributes, "status")
				assert.True(t, found)
				assert.Equal(t, tc.status, value)
			}
		})
	}
}

func Test_TracingCollector_IgnoresForeignSpans(t *testing.T) {
	// setup
	collector, exporter := newTracingCollector(t)
	_, foreign := testdoubles.NewTracingCollectorSpy().StartSpan(context.Background(), "foreign", nil)

	// act
	assert.NotPanics(t, func() { collector.FinishSpan(foreign, "success", nil) })

	// assert
	assert.Empty(t, exporter.GetSpans())
}
