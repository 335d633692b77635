package bookdetail

const (
	queryType = "BookDetail"
)

// Query represents the intent to look at one book.
type Query struct {
	ISBN string
}

// BuildQuery creates a new Query.
func BuildQuery(isbn string) Query {
	return Query{ISBN: isbn}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
