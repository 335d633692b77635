package loanedbooksbyborrower

import "time"

const (
	queryType = "LoanedBooksByBorrower"

	// PageSize is the number of loans per page.
	PageSize = 10
)

// Query represents the intent to list the loans of the logged-in member.
type Query struct {
	PageNumber uint
	Now        time.Time
}

// BuildQuery creates a new Query. Page numbers start at 1.
func BuildQuery(pageNumber uint, now time.Time) Query {
	return Query{
		PageNumber: pageNumber,
		Now:        now,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
