package changecopystatus

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

// Decide applies a manual status change.
//
//	IDEMPOTENCY: the copy already has the status
//	ERROR: core.ErrInvalidStatusChange for the on-loan status
func Decide(bookCopy core.BookCopy, command Command) core.DecisionResult {
	if bookCopy.Status == command.Status {
		return core.IdempotentDecision()
	}

	changed, err := bookCopy.ChangeStatus(command.Status)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(changed)
}
