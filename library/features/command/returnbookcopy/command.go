package returnbookcopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

const (
	commandType = "ReturnBookCopy"
)

// Command represents the intent to mark a copy as returned.
type Command struct {
	CopyID     uuid.UUID
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(copyID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		CopyID:     copyID,
		OccurredAt: core.ToTimestamp(occurredAt),
	}
}
