package authorlist

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// AuthorList is one page of authors.
type AuthorList struct {
	Authors []core.Author
	Page    shell.PageInfo
}
