package vote

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/polls/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	GetQuestion(ctx context.Context, questionID string) (catalogstore.StorableQuestion, error)
	IncrementChoiceVotes(ctx context.Context, questionID string, choiceID string) error
}

// CommandHandler runs the workflow Read -> Map -> Decide -> Increment.
// The increment is a single atomic update without a version check, so it never conflicts and is not retried.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the command once. Votes need no login.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	err := h.executeCommand(ctx, command)
	if err != nil {
		return shell.NewErrorResult(shell.SingleAttempt(err)), err
	}

	return shell.NewSuccessResult(shell.SingleAttempt(nil)), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	ctx = catalogstore.WithStrongConsistency(ctx)

	storable, err := h.store.GetQuestion(ctx, command.QuestionID.String())
	if errors.Is(err, catalogstore.ErrNotFound) {
		return core.ErrQuestionNotFound
	}

	if err != nil {
		return err
	}

	if _, err = Decide(shell.QuestionFrom(storable), command); err != nil {
		return err
	}

	err = h.store.IncrementChoiceVotes(ctx, storable.QuestionID, command.ChoiceID)
	if errors.Is(err, catalogstore.ErrNotFound) {
		// the choice was removed after it was read
		return core.ErrNoChoiceSelected
	}

	return err
}
