package vote

import (
	"time"

	"github.com/google/uuid"
)

const (
	commandType = "Vote"
)

// Command represents the intent to vote for a choice.
type Command struct {
	QuestionID uuid.UUID
	ChoiceID   string
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. An empty choiceID is allowed and rejected by Decide.
func BuildCommand(questionID uuid.UUID, choiceID string, occurredAt time.Time) Command {
	return Command{
		QuestionID: questionID,
		ChoiceID:   choiceID,
		OccurredAt: occurredAt,
	}
}
