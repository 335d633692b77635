// Package allloanedbooks implements the librarian's list of all loans.
//
// Principals with the can_mark_returned permission see every copy on loan, ordered by due date,
// twenty per page, with the username of each borrower.
package allloanedbooks
