package addbookcopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

const (
	commandType = "AddBookCopy"
)

// Command represents the intent to add a copy of a title to the stock.
type Command struct {
	CopyID     uuid.UUID
	ISBN       core.ISBNString
	Imprint    string
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command, the ISBN is normalized to its digits.
func BuildCommand(copyID uuid.UUID, isbn string, imprint string, occurredAt time.Time) (Command, error) {
	normalized, err := core.NormalizeISBN(isbn)
	if err != nil {
		return Command{}, err
	}

	return Command{
		CopyID:     copyID,
		ISBN:       normalized,
		Imprint:    imprint,
		OccurredAt: core.ToTimestamp(occurredAt),
	}, nil
}
