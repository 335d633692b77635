// Package oteladapters connects the observability interfaces of the catalog store to OpenTelemetry.
//
//   - SlogBridgeLogger: catalogstore.Logger and catalogstore.ContextualLogger via the otelslog bridge,
//     so log records carry the trace and span ids of the context
//   - OTelLogger: catalogstore.ContextualLogger on the OpenTelemetry log API
//   - MetricsCollector: catalogstore.ContextualMetricsCollector on OpenTelemetry instruments
//   - TracingCollector: catalogstore.TracingCollector on an OpenTelemetry tracer
package oteladapters
