package bookdetail

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

// BookDetail is a book with everything its detail page shows.
type BookDetail struct {
	Book         core.Book
	Display      string
	Authors      []core.Author
	Genre        string
	Language     string
	Copies       []core.BookCopy
	NumAvailable int
}
