// Package testdoubles provides spies for the observability interfaces of the catalog store.
//
//   - LoggerSpy: captures plain and contextual log calls
//   - MetricsCollectorSpy: captures durations, counters and values with their labels
//   - TracingCollectorSpy: captures spans with start attributes, status and end attributes
//
// They let tests verify instrumentation without a telemetry backend.
package testdoubles
