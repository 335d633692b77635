package shell

import "time"

// HandlerResult is the outcome of a command handler execution.
// It carries the business outcome (idempotency) and the retry metadata,
// so the observable wrapper can report both without knowing the handler.
type HandlerResult struct {
	// Idempotent is true if the command didn't have to change anything.
	Idempotent bool

	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the time spent waiting in backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType is "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded" or "other".
	LastErrorType string

	// RetriesExhausted is true if every attempt ended in a concurrency conflict.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for a command that changed state.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(retryMetrics, false)
}

// NewIdempotentResult creates a HandlerResult for a command that found nothing to change.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(retryMetrics, true)
}

// NewErrorResult creates a HandlerResult for a failed command, keeping the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(retryMetrics, false)
}

func newHandlerResult(retryMetrics RetryMetrics, idempotent bool) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
