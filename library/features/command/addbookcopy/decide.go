package addbookcopy

import (
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

var (
	// ErrBookNotInCatalog is returned when a copy should be added for an unknown ISBN.
	ErrBookNotInCatalog = errors.New("book is not in the catalog")

	// ErrCopyIDTaken is returned when the copy id already belongs to a copy of another title.
	ErrCopyIDTaken = errors.New("copy id is already used for another book")
)

// State is what the handler knows before deciding.
type State struct {
	BookExists   bool
	CopyExists   bool
	ExistingCopy core.BookCopy
}

// Decide implements the business logic to determine whether a copy should be added.
//
// Business Rules:
//
//	GIVEN: a title with the command's ISBN in the catalog
//	WHEN: AddBookCopy is received
//	THEN: a new copy in Maintenance is created
//	ERROR: ErrBookNotInCatalog if the ISBN is unknown
//	ERROR: ErrCopyIDTaken if the copy id exists for another ISBN
//	IDEMPOTENCY: if the copy already exists for this ISBN, nothing changes
func Decide(s State, command Command) core.DecisionResult {
	if s.CopyExists {
		if s.ExistingCopy.ISBN == command.ISBN {
			return core.IdempotentDecision()
		}

		return core.ErrorDecision(ErrCopyIDTaken)
	}

	if !s.BookExists {
		return core.ErrorDecision(ErrBookNotInCatalog)
	}

	return core.SuccessDecision(core.BuildBookCopy(command.CopyID, command.ISBN, command.Imprint))
}
