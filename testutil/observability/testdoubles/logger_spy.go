package testdoubles

import (
	"context"
	"strings"
	"sync"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
)

// SpyLogRecord is one captured log call.
type SpyLogRecord struct {
	Level      string
	Message    string
	Args       []any
	Contextual bool
	Context    context.Context
}

// LoggerSpy captures calls to both the plain and the contextual logger interfaces.
type LoggerSpy struct {
	records []SpyLogRecord
	mu      sync.Mutex
}

// NewLoggerSpy creates an empty LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

func (s *LoggerSpy) record(ctx context.Context, contextual bool, level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{
		Level:      level,
		Message:    msg,
		Args:       append([]any(nil), args...),
		Contextual: contextual,
		Context:    ctx,
	})
}

func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record(context.Background(), false, "debug", msg, args)
}
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record(context.Background(), false, "info", msg, args)
}
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record(context.Background(), false, "warn", msg, args)
}
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record(context.Background(), false, "error", msg, args)
}

func (s *LoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, true, "debug", msg, args)
}

func (s *LoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, true, "info", msg, args)
}

func (s *LoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, true, "warn", msg, args)
}

func (s *LoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, true, "error", msg, args)
}

// Records returns a copy of all captured records.
func (s *LoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// HasLog reports whether a record with the level exists whose message contains the fragment.
func (s *LoggerSpy) HasLog(level string, messageFragment string) bool {
	for _, record := range s.Records() {
		if record.Level == level && strings.Contains(record.Message, messageFragment) {
			return true
		}
	}

	return false
}

// CountLevel returns the number of records with the given level.
func (s *LoggerSpy) CountLevel(level string) int {
	count := 0
	for _, record := range s.Records() {
		if record.Level == level {
			count++
		}
	}

	return count
}

// Reset drops all captured records.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

var (
	_ catalogstore.Logger           = (*LoggerSpy)(nil)
	_ catalogstore.ContextualLogger = (*LoggerSpy)(nil)
)
