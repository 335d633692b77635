package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
	"github.com/AntonStoeckl/library-catalog-go/testutil/observability/testdoubles"
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetryOnConcurrencyConflict(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return errors.Join(catalogstore.ErrConcurrencyConflict, errors.New("version mismatch"))
		}
		return nil
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(context.Background(), fn, shell.WithBaseDelay(time.Millisecond))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_DoesNotRetryOtherErrors(t *testing.T) {
	// arrange
	callCount := 0
	permanent := errors.New("boom")
	fn := func(_ context.Context) error {
		callCount++
		return permanent
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "other", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_ExhaustsRetries(t *testing.T) {
	// arrange
	callCount := 0
	metrics := testdoubles.NewMetricsCollectorSpy()
	fn := func(_ context.Context) error {
		callCount++
		return catalogstore.ErrConcurrencyConflict
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(
		context.Background(),
		fn,
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithJitterFactor(0),
		shell.WithRetryMetrics(metrics, "LendBookCopy"),
	)

	// assert
	assert.ErrorIs(t, err, catalogstore.ErrConcurrencyConflict)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.True(t, meta.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", meta.LastErrorType)
	assert.Equal(t, 3*time.Millisecond, meta.TotalDelay)

	assert.Len(t, metrics.Find(testdoubles.MetricKindCounter, shell.CommandHandlerRetriesMetric, nil), 2)
	assert.Len(t, metrics.Find(testdoubles.MetricKindDuration, shell.CommandHandlerRetryDelayMetric, nil), 2)
	assert.True(t, metrics.Has(
		testdoubles.MetricKindCounter,
		shell.CommandHandlerMaxRetriesReachedMetric,
		map[string]string{"command_type": "LendBookCopy", "final_error_type": "concurrency_conflict"},
	))
}

func Test_RetryWithExponentialBackoff_StopsWhenContextIsCanceled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context) error {
		cancel()
		return catalogstore.ErrConcurrencyConflict
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(ctx, fn, shell.WithBaseDelay(time.Second))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, "context_canceled", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	fn := func(_ context.Context) error { return nil }

	testCases := []struct {
		name   string
		option shell.RetryOption
		err    error
	}{
		{"max attempts", shell.WithMaxAttempts(0), shell.ErrInvalidMaxAttempts},
		{"base delay", shell.WithBaseDelay(-time.Second), shell.ErrNegativeBaseDelay},
		{"jitter factor", shell.WithJitterFactor(1.5), shell.ErrInvalidJitterFactor},
		{"nil collector", shell.WithRetryMetrics(nil, "LendBookCopy"), shell.ErrNilMetricsCollector},
		{"empty command type", shell.WithRetryMetrics(testdoubles.NewMetricsCollectorSpy(), ""), shell.ErrEmptyCommandType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := shell.RetryWithExponentialBackoff(context.Background(), fn, tc.option)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func Test_SingleAttempt(t *testing.T) {
	testCases := []struct {
		name              string
		err               error
		expectedErrorType string
	}{
		{name: "success", err: nil, expectedErrorType: "none"},
		{name: "conflict", err: catalogstore.ErrConcurrencyConflict, expectedErrorType: "concurrency_conflict"},
		{name: "other", err: errors.New("boom"), expectedErrorType: "other"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			meta := shell.SingleAttempt(tc.err)

			// assert
			assert.Equal(t, 1, meta.Attempts)
			assert.Equal(t, time.Duration(0), meta.TotalDelay)
			assert.Equal(t, tc.expectedErrorType, meta.LastErrorType)
			assert.False(t, meta.RetriesExhausted)
		})
	}
}
