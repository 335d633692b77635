// Package overduebooks implements the librarian's list of overdue loans.
package overduebooks
