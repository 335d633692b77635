package authorlist

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	ListAuthors(ctx context.Context, page catalogstore.Page) ([]catalogstore.StorableAuthor, error)
	CountAuthors(ctx context.Context) (int, error)
}

// QueryHandler lists the authors of the catalog.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with shell.ErrNotLoggedIn without a principal.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AuthorList, error) {
	if _, err := shell.RequireLogin(ctx); err != nil {
		return AuthorList{}, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	total, err := h.store.CountAuthors(ctx)
	if err != nil {
		return AuthorList{}, err
	}

	page := shell.NewPageInfo(query.PageNumber, PageSize, total)

	storables, err := h.store.ListAuthors(ctx, page.Page())
	if err != nil {
		return AuthorList{}, err
	}

	return AuthorList{Authors: shell.AuthorsFrom(storables), Page: page}, nil
}
