package sqlengine

import (
	"regexp"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
)

var validTablePrefix = regexp.MustCompile(`^[a-z0-9_]*$`)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithTablePrefix prepends the prefix to all table names, e.g. "catalog_" -> "catalog_book_copies".
func WithTablePrefix(prefix string) Option {
	return func(e *Engine) error {
		if !validTablePrefix.MatchString(prefix) {
			return catalogstore.ErrInvalidTablePrefix
		}

		e.tablePrefix = prefix

		return nil
	}
}

// WithLogger sets the logger for the Engine.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: row counts, durations, concurrency conflicts (production-safe)
// Warn level: non-critical issues like failing to close rows
// Error level: failures that make an operation fail.
func WithLogger(logger catalogstore.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, used in addition to the plain logger.
func WithContextualLogger(logger catalogstore.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine.
func WithMetrics(collector catalogstore.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine.
func WithTracing(collector catalogstore.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}
