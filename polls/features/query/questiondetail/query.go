package questiondetail

import "time"

const (
	queryType = "QuestionDetail"
)

// Query represents the intent to look at a question and its results at Now.
type Query struct {
	QuestionID string
	Now        time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(questionID string, now time.Time) Query {
	return Query{
		QuestionID: questionID,
		Now:        now,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
