package renewbookcopy

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

// Decide implements the business logic of a renewal.
//
// Business Rules:
//
//	GIVEN: a copy on loan
//	WHEN: RenewBookCopy is received
//	THEN: the copy is due back at the renewal time plus the extension
//	ERROR: core.ErrCopyNotOnLoan if the copy is not on loan
//	IDEMPOTENCY: if the copy is already due at that time, nothing changes
func Decide(bookCopy core.BookCopy, command Command) core.DecisionResult {
	renewed, err := bookCopy.Renew(command.OccurredAt, command.Extension)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if renewed.DueBack.Equal(bookCopy.DueBack) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(renewed)
}
