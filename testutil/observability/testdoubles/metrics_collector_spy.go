package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
)

// Metric kinds captured by MetricsCollectorSpy.
const (
	MetricKindDuration = "duration"
	MetricKindCounter  = "counter"
	MetricKindValue    = "value"
)

// SpyMetricRecord is one captured metric call.
type SpyMetricRecord struct {
	Kind     string
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// MetricsCollectorSpy captures metric calls. It implements the contextual variant as well,
// so engines always take the context-aware path with it.
type MetricsCollectorSpy struct {
	records []SpyMetricRecord
	mu      sync.Mutex
}

// NewMetricsCollectorSpy creates an empty MetricsCollectorSpy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) add(record SpyMetricRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Labels = maps.Clone(record.Labels)
	s.records = append(s.records, record)
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.add(SpyMetricRecord{Kind: MetricKindDuration, Metric: metric, Duration: duration, Labels: labels})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.add(SpyMetricRecord{Kind: MetricKindCounter, Metric: metric, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.add(SpyMetricRecord{Kind: MetricKindValue, Metric: metric, Value: value, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// Records returns a copy of all captured records.
func (s *MetricsCollectorSpy) Records() []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricRecord(nil), s.records...)
}

// Find returns all records of a kind and metric whose labels contain all given labels.
func (s *MetricsCollectorSpy) Find(kind string, metric string, labels map[string]string) []SpyMetricRecord {
	found := make([]SpyMetricRecord, 0)

	for _, record := range s.Records() {
		if record.Kind != kind || record.Metric != metric {
			continue
		}

		matches := true
		for key, value := range labels {
			if record.Labels[key] != value {
				matches = false
				break
			}
		}

		if matches {
			found = append(found, record)
		}
	}

	return found
}

// Has reports whether at least one record matches, see Find.
func (s *MetricsCollectorSpy) Has(kind string, metric string, labels map[string]string) bool {
	return len(s.Find(kind, metric, labels)) > 0
}

var _ catalogstore.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
