// Package renewbookcopy implements the Renew Book Copy use case.
//
// A librarian extends the loan of a copy by 3, 7 or 14 days. The new due date counts
// from the moment of the renewal, the loan date stays as it was.
// Only principals with the can_mark_returned permission may renew.
package renewbookcopy
