package sqlengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/library-catalog-go/testutil/observability/testdoubles"
)

func Test_Observability_WithLogger_LogsSQLAndOperations(t *testing.T) {
	// setup
	ctx := context.Background()
	logger := testdoubles.NewLoggerSpy()
	engine := NewEngine(t, sqlengine.WithLogger(logger))

	// arrange
	logger.Reset()

	// act
	_, err := engine.QueryBookCopies(ctx, catalogstore.BookCopyFilter{}, catalogstore.Page{})

	// assert
	assert.NoError(t, err)
	assert.True(t, logger.HasLog("debug", "executed sql for: query_book_copies"))
	assert.True(t, logger.HasLog("info", "catalogstore operation: query_book_copies"))
	assert.Equal(t, 0, logger.CountLevel("error"))
	for _, record := range logger.Records() {
		assert.False(t, record.Contextual, "the plain logger must not receive contextual calls")
	}
}

func Test_Observability_WithContextualLogger_PassesTheContext(t *testing.T) {
	// setup
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "request-1")
	logger := testdoubles.NewLoggerSpy()
	engine := NewEngine(t, sqlengine.WithContextualLogger(logger))

	// arrange
	logger.Reset()

	// act
	_, err := engine.CountBooks(ctx)

	// assert
	assert.NoError(t, err)
	require.NotEmpty(t, logger.Records())
	for _, record := range logger.Records() {
		assert.True(t, record.Contextual)
		assert.Equal(t, "request-1", record.Context.Value(ctxKey{}))
	}
}

func Test_Observability_WithLogger_LogsFailuresAsErrors(t *testing.T) {
	// setup
	ctx := context.Background()
	logger := testdoubles.NewLoggerSpy()
	engine := NewEngine(t, sqlengine.WithLogger(logger))

	// arrange
	require.NoError(t, engine.DropSchema(ctx))
	logger.Reset()

	// act
	_, err := engine.ListGenres(ctx)

	// assert
	assert.ErrorIs(t, err, catalogstore.ErrQueryingFailed)
	assert.True(t, logger.HasLog("error", "database query execution failed"))
}

func Test_Observability_WithTracing_StartsAndFinishesSpans(t *testing.T) {
	// setup
	ctx := catalogstore.WithEventualConsistency(context.Background())
	tracer := testdoubles.NewTracingCollectorSpy()
	engine := NewEngine(t, sqlengine.WithTracing(tracer))

	// arrange
	GivenCatalog(t, ctx, engine)
	bookCopy := GivenBookCopy(t, ctx, engine, FixtureISBN)

	// act
	_, _, err := engine.GetBookCopy(ctx, bookCopy.CopyID)
	_, _, missingErr := engine.GetBookCopy(ctx, GivenUniqueID(t).String())

	// assert
	require.NoError(t, err)
	require.ErrorIs(t, missingErr, catalogstore.ErrNotFound)

	var gets []*testdoubles.SpySpan
	for _, span := range tracer.Spans() {
		if span.Name == "catalogstore.get_book_copy" {
			gets = append(gets, span)
		}
	}

	require.Len(t, gets, 2)
	assert.Equal(t, "get_book_copy", gets[0].StartAttributes["operation"])
	assert.Equal(t, "sqlite3", gets[0].StartAttributes["db.dialect"])
	assert.Equal(t, "eventual", gets[0].StartAttributes["consistency_level"])
	assert.Equal(t, bookCopy.CopyID, gets[0].StartAttributes["record_id"])
	assert.True(t, gets[0].Finished())
	assert.Equal(t, "success", gets[0].Status())
	assert.Equal(t, "1", gets[0].Attributes()["row_count"])

	assert.True(t, gets[1].Finished())
	assert.Equal(t, "error", gets[1].Status())
	assert.Equal(t, "not_found", gets[1].Attributes()["error_type"])
}

func Test_Observability_WithMetrics_RecordsDurationsAndConflicts(t *testing.T) {
	// setup
	ctx := context.Background()
	metrics := testdoubles.NewMetricsCollectorSpy()
	engine := NewEngine(t, sqlengine.WithMetrics(metrics))

	// arrange
	GivenCatalog(t, ctx, engine)
	bookCopy := GivenBookCopy(t, ctx, engine, FixtureISBN)
	available, err := shell.StorableBookCopyFrom(WithStatus(core.Available)(bookCopy))
	require.NoError(t, err)
	require.NoError(t, engine.UpdateBookCopy(ctx, available, 1))

	// act
	conflictErr := engine.UpdateBookCopy(ctx, available, 1)

	// assert
	require.ErrorIs(t, conflictErr, catalogstore.ErrConcurrencyConflict)
	assert.True(t, metrics.Has(testdoubles.MetricKindDuration, "catalogstore_operation_duration_seconds", map[string]string{
		"operation": "update_book_copy",
		"status":    "success",
	}))
	assert.True(t, metrics.Has(testdoubles.MetricKindValue, "catalogstore_rows_returned", map[string]string{
		"operation": "create_book_copy",
	}))
	assert.Len(t, metrics.Find(testdoubles.MetricKindCounter, "catalogstore_concurrency_conflicts_total", map[string]string{
		"operation":     "update_book_copy",
		"conflict_type": "version",
	}), 1)
	assert.True(t, metrics.Has(testdoubles.MetricKindCounter, "catalogstore_database_errors_total", map[string]string{
		"operation":  "update_book_copy",
		"error_type": "concurrency_conflict",
	}))
}

func Test_Observability_CanceledContext_IsClassifiedAsCanceled(t *testing.T) {
	// setup
	metrics := testdoubles.NewMetricsCollectorSpy()
	engine := NewEngine(t, sqlengine.WithMetrics(metrics))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	cancel()

	// act
	_, err := engine.ListBorrowers(ctx)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, metrics.Has(testdoubles.MetricKindCounter, "catalogstore_database_errors_total", map[string]string{
		"operation":  "list_borrowers",
		"error_type": "canceled",
	}))
}
