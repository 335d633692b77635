package addbookcopy

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	GetBook(ctx context.Context, isbn string) (catalogstore.StorableBook, error)
	GetBookCopy(ctx context.Context, copyID string) (catalogstore.StorableBookCopy, catalogstore.VersionUint, error)
	CreateBookCopy(ctx context.Context, bookCopy catalogstore.StorableBookCopy) error
}

// CommandHandler runs the workflow Read -> Decide -> Create.
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

// Handle executes the command with retry on concurrency conflicts.
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

	var s State

	_, err := h.store.GetBook(ctx, command.ISBN)
	switch {
	case err == nil:
		s.BookExists = true
	case !errors.Is(err, catalogstore.ErrNotFound):
		return false, err
	}

	storable, _, err := h.store.GetBookCopy(ctx, command.CopyID.String())
	switch {
	case err == nil:
		s.CopyExists = true
		if s.ExistingCopy, err = shell.BookCopyFrom(storable); err != nil {
			return false, err
		}
	case !errors.Is(err, catalogstore.ErrNotFound):
		return false, err
	}

	result := Decide(s, command)
	if result.IsIdempotent() {
		return true, nil
	}

	if decisionErr := result.HasError(); decisionErr != nil {
		return false, decisionErr
	}

	newCopy, err := shell.StorableBookCopyFrom(result.BookCopy)
	if err != nil {
		return false, err
	}

	return false, h.store.CreateBookCopy(ctx, newCopy)
}
