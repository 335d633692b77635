package lendbookcopy

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

// Decide implements the business logic to determine whether the copy can be lent.
//
// Business Rules:
//
//	GIVEN: a copy that is not on loan (Maintenance, Available or Reserved)
//	WHEN: LendBookCopy is received
//	THEN: the copy is on loan to the borrower, due back after the loan period
//	ERROR: core.ErrCopyAlreadyOnLoan if the copy is on loan to another borrower
//	IDEMPOTENCY: if the copy is already on loan to this borrower, nothing changes
func Decide(bookCopy core.BookCopy, command Command) core.DecisionResult {
	borrowerID := command.BorrowerID.String()

	if bookCopy.IsLentTo(borrowerID) {
		return core.IdempotentDecision()
	}

	if bookCopy.IsOnLoan() {
		return core.ErrorDecision(core.ErrCopyAlreadyOnLoan)
	}

	return core.SuccessDecision(
		bookCopy.LoanFor(command.OccurredAt, command.Period).LendTo(borrowerID),
	)
}
