package authordetail

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	GetAuthor(ctx context.Context, authorID string) (catalogstore.StorableAuthor, error)
	QueryBooksByAuthor(ctx context.Context, authorID string) ([]catalogstore.StorableBook, error)
}

// QueryHandler shows one author.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with catalogstore.ErrNotFound for unknown authors.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AuthorDetail, error) {
	if _, err := shell.RequireLogin(ctx); err != nil {
		return AuthorDetail{}, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	author, err := h.store.GetAuthor(ctx, query.AuthorID)
	if err != nil {
		return AuthorDetail{}, err
	}

	books, err := h.store.QueryBooksByAuthor(ctx, query.AuthorID)
	if err != nil {
		return AuthorDetail{}, err
	}

	return AuthorDetail{
		Author: shell.AuthorFrom(author),
		Books:  shell.BooksFrom(books),
	}, nil
}
