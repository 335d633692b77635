package returnbookcopy

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

// Decide implements the business logic of a return.
//
// Business Rules:
//
//	GIVEN: a copy on loan
//	WHEN: ReturnBookCopy is received
//	THEN: the copy is Available and its loan is cleared
//	IDEMPOTENCY: if the copy is not on loan, nothing changes
func Decide(bookCopy core.BookCopy, _ Command) core.DecisionResult {
	if !bookCopy.IsOnLoan() {
		return core.IdempotentDecision()
	}

	returned, err := bookCopy.Return()
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(returned)
}
