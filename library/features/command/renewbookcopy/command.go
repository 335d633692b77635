package renewbookcopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

const (
	commandType = "RenewBookCopy"
)

// Command represents the intent to extend the loan of a copy.
type Command struct {
	CopyID     uuid.UUID
	Extension  core.LoanPeriod
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand validates the extension and creates a new Command.
// It fails with core.ErrInvalidExtension unless extensionDays is 3, 7 or 14.
func BuildCommand(copyID uuid.UUID, extensionDays int, occurredAt time.Time) (Command, error) {
	extension, err := core.ValidateExtension(extensionDays)
	if err != nil {
		return Command{}, err
	}

	return Command{
		CopyID:     copyID,
		Extension:  extension,
		OccurredAt: core.ToTimestamp(occurredAt),
	}, nil
}
