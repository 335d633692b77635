package authordetail

const (
	queryType = "AuthorDetail"
)

// Query represents the intent to look at one author.
type Query struct {
	AuthorID string
}

// BuildQuery creates a new Query.
func BuildQuery(authorID string) Query {
	return Query{AuthorID: authorID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
