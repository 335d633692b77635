package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
)

// SpySpan is a span captured by TracingCollectorSpy.
type SpySpan struct {
	Name            string
	StartAttributes map[string]string
	status          string
	attributes      map[string]string
	finished        bool
	mu              sync.Mutex
}

func (s *SpySpan) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = status
}

func (s *SpySpan) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attributes[key] = value
}

// Status returns the last status set on the span.
func (s *SpySpan) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// Attributes returns a copy of the attributes added after the start.
func (s *SpySpan) Attributes() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.attributes)
}

// Finished reports whether FinishSpan was called for the span.
func (s *SpySpan) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.finished
}

// TracingCollectorSpy captures started and finished spans.
type TracingCollectorSpy struct {
	spans []*SpySpan
	mu    sync.Mutex
}

// NewTracingCollectorSpy creates an empty TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, catalogstore.SpanContext) {

	span := &SpySpan{
		Name:            name,
		StartAttributes: maps.Clone(attrs),
		attributes:      make(map[string]string),
	}

	s.mu.Lock()
	s.spans = append(s.spans, span)
	s.mu.Unlock()

	return ctx, span
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx catalogstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpan)
	if !ok {
		return
	}

	span.mu.Lock()
	defer span.mu.Unlock()

	span.status = status
	span.finished = true
	for key, value := range attrs {
		span.attributes[key] = value
	}
}

// Spans returns all captured spans in start order.
func (s *TracingCollectorSpy) Spans() []*SpySpan {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*SpySpan(nil), s.spans...)
}

// SpanNamed returns the first span with the given name, or nil.
func (s *TracingCollectorSpy) SpanNamed(name string) *SpySpan {
	for _, span := range s.Spans() {
		if span.Name == name {
			return span
		}
	}

	return nil
}

var _ catalogstore.TracingCollector = (*TracingCollectorSpy)(nil)
