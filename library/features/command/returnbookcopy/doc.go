// Package returnbookcopy implements the Return Book Copy use case.
//
// A librarian marks a copy on loan as returned. It becomes available and loses its
// loan date, due date and borrower. Returning a copy that is not on loan is a no-op.
// Only principals with the can_mark_returned permission may do this.
package returnbookcopy
