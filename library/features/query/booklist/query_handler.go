package booklist

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/internal/authornames"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	authornames.Store
	ListBooks(ctx context.Context, page catalogstore.Page) ([]catalogstore.StorableBook, error)
	CountBooks(ctx context.Context) (int, error)
}

// QueryHandler lists the books of the catalog.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with shell.ErrNotLoggedIn without a principal.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookList, error) {
	if _, err := shell.RequireLogin(ctx); err != nil {
		return BookList{}, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	total, err := h.store.CountBooks(ctx)
	if err != nil {
		return BookList{}, err
	}

	page := shell.NewPageInfo(query.PageNumber, PageSize, total)

	storables, err := h.store.ListBooks(ctx, page.Page())
	if err != nil {
		return BookList{}, err
	}

	resolver := authornames.NewResolver(h.store)
	items := make([]BookListItem, 0, len(storables))

	for _, book := range shell.BooksFrom(storables) {
		authors, resolveErr := resolver.Resolve(ctx, book.AuthorIDs)
		if resolveErr != nil {
			return BookList{}, resolveErr
		}

		items = append(items, BookListItem{
			ISBN:    book.ISBN,
			Title:   book.Title,
			Display: book.Display(authors),
		})
	}

	return BookList{Books: items, Page: page}, nil
}
