package returnbookcopy

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	GetBookCopy(ctx context.Context, copyID string) (catalogstore.StorableBookCopy, catalogstore.VersionUint, error)
	UpdateBookCopy(ctx context.Context, bookCopy catalogstore.StorableBookCopy, expectedVersion catalogstore.VersionUint) error
}

// CommandHandler runs the workflow Authorize -> Read -> Map -> Decide -> Update.
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

// Handle checks the permission of the principal in ctx and executes the command with retry.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if _, err := shell.RequirePermission(ctx, core.PermissionMarkReturned); err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

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
