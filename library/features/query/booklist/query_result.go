package booklist

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// BookListItem is one row of the book list.
type BookListItem struct {
	ISBN    core.ISBNString
	Title   string
	Display string
}

// BookList is one page of the book list, ordered by title.
type BookList struct {
	Books []BookListItem
	Page  shell.PageInfo
}
