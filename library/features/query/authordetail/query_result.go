package authordetail

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

// AuthorDetail is an author with their books, ordered by title.
type AuthorDetail struct {
	Author core.Author
	Books  []core.Book
}
