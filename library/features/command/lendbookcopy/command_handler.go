package lendbookcopy

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	GetBorrower(ctx context.Context, borrowerID string) (catalogstore.StorableBorrower, error)
	GetBookCopy(ctx context.Context, copyID string) (catalogstore.StorableBookCopy, catalogstore.VersionUint, error)
	UpdateBookCopy(ctx context.Context, bookCopy catalogstore.StorableBookCopy, expectedVersion catalogstore.VersionUint) error
}

// CommandHandler runs the workflow Read -> Map -> Decide -> Update with the expected version.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command and retries it with exponential backoff on concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), err
	}

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	ctx = catalogstore.WithStrongConsistency(ctx)

	// the borrower must exist, the store doesn't enforce it on every driver
	if _, err := h.store.GetBorrower(ctx, command.BorrowerID.String()); err != nil {
		return false, err
	}

	storable, version, err := h.store.GetBookCopy(ctx, command.CopyID.String())
	if err != nil {
		return false, err
	}

	bookCopy, err := shell.BookCopyFrom(storable)
	if err != nil {
		return false, err
	}

	result := Decide(bookCopy, command)
	if result.IsIdempotent() {
		return true, nil
	}

	if decisionErr := result.HasError(); decisionErr != nil {
		return false, decisionErr
	}

	changed, err := shell.StorableBookCopyFrom(result.BookCopy)
	if err != nil {
		return false, err
	}

	return false, h.store.UpdateBookCopy(ctx, changed, version)
}
