package main

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/oteladapters"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell/config"
)

const instrumentationName = "github.com/AntonStoeckl/library-catalog-go/cmd/librarian"

type telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracing        *oteladapters.TracingCollector
	metrics        *oteladapters.MetricsCollector
}

// newTelemetry sets up the OpenTelemetry providers. Without an exporter spans are still
// sampled, so log lines carry trace ids.
func newTelemetry(_ context.Context, cfg config.TelemetryConfig, w io.Writer) (*telemetry, error) {
	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName))

	traceOptions := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	metricOptions := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if cfg.Exporter == config.ExporterStdout {
		traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, err
		}

		metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
		if err != nil {
			return nil, err
		}

		traceOptions = append(traceOptions, sdktrace.WithBatcher(traceExporter))
		metricOptions = append(metricOptions, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
	}

	tracerProvider := sdktrace.NewTracerProvider(traceOptions...)
	meterProvider := sdkmetric.NewMeterProvider(metricOptions...)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &telemetry{
		tracerProvider: tracerProvider,
		meterProvider:  meterProvider,
		tracing:        oteladapters.NewTracingCollector(tracerProvider.Tracer(instrumentationName)),
		metrics:        oteladapters.NewMetricsCollector(meterProvider.Meter(instrumentationName)),
	}, nil
}

// shutdown flushes pending spans and metrics.
func (t *telemetry) shutdown(ctx context.Context) error {
	return errors.Join(
		t.tracerProvider.Shutdown(ctx),
		t.meterProvider.Shutdown(ctx),
	)
}
