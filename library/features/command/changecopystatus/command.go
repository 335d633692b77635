package changecopystatus

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

const (
	commandType = "ChangeCopyStatus"
)

// Command represents the intent to set the status of a copy manually.
type Command struct {
	CopyID uuid.UUID
	Status core.LoanStatus
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand parses the status code (m, o, a, r) and creates a new Command.
func BuildCommand(copyID uuid.UUID, statusCode string) (Command, error) {
	status, err := core.ParseLoanStatus(statusCode)
	if err != nil {
		return Command{}, err
	}

	return Command{
		CopyID: copyID,
		Status: status,
	}, nil
}
