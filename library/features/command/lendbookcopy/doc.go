// Package lendbookcopy implements the Lend Book Copy use case.
//
// A copy that is not on loan is lent to a borrower: it gets the loan date, a due date after
// the loan period (14 days unless another period is given) and the status on loan.
// Lending a copy again to the same borrower is a no-op, lending it to somebody else fails.
//
// Concurrent loans of the same copy are resolved by the store's version check,
// the handler retries on conflicts and the loser sees the copy already on loan.
package lendbookcopy
