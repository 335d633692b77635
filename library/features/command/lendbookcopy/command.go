package lendbookcopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

const (
	commandType = "LendBookCopy"
)

// Command represents the intent to lend a copy to a borrower.
// A zero Period means the default loan period.
type Command struct {
	CopyID     uuid.UUID
	BorrowerID uuid.UUID
	Period     core.LoanPeriod
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(copyID uuid.UUID, borrowerID uuid.UUID, period core.LoanPeriod, occurredAt time.Time) Command {
	return Command{
		CopyID:     copyID,
		BorrowerID: borrowerID,
		Period:     period,
		OccurredAt: core.ToTimestamp(occurredAt),
	}
}
