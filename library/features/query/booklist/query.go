package booklist

const (
	queryType = "BookList"

	// PageSize is the number of books per page.
	PageSize = 10
)

// Query represents the intent to browse the books of the catalog.
type Query struct {
	PageNumber uint
}

// BuildQuery creates a new Query. Page numbers start at 1.
func BuildQuery(pageNumber uint) Query {
	return Query{PageNumber: pageNumber}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
