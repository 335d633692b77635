package latestquestions

import "time"

const (
	queryType = "LatestQuestions"
)

// Query represents the intent to see the latest questions published at Now.
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
