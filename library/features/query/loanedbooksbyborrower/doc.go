// Package loanedbooksbyborrower implements the "my borrowed books" query.
//
// A logged-in member sees the copies on loan to them, ordered by due date, ten per page,
// with overdue loans flagged.
package loanedbooksbyborrower
