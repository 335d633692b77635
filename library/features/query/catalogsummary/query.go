package catalogsummary

const (
	queryType = "CatalogSummary"
)

// Query represents the intent to read the catalog summary.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
