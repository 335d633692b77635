package overduebooks

import "time"

const (
	queryType = "OverdueBooks"
)

// Query represents the intent to list the copies that should have been back before Now.
type Query struct {
	Now time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(now time.Time) Query {
	return Query{Now: now}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
