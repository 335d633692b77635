package languagelist

const (
	queryType = "LanguageList"
)

// Query represents the intent to list all languages.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
