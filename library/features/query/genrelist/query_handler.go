package genrelist

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	ListGenres(ctx context.Context) ([]catalogstore.StorableGenre, error)
}

// QueryHandler lists genres by name. It needs no login.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns all genres ordered by name.
func (h QueryHandler) Handle(ctx context.Context, _ Query) ([]core.Genre, error) {
	genres, err := h.store.ListGenres(catalogstore.WithEventualConsistency(ctx))
	if err != nil {
		return nil, err
	}

	return shell.GenresFrom(genres), nil
}
