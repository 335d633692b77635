package memberloans

import "time"

const (
	queryType = "MemberLoans"
)

// Query represents the intent to look at the loans of one member.
type Query struct {
	Username string
	Now      time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(username string, now time.Time) Query {
	return Query{
		Username: username,
		Now:      now,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
