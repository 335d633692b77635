package languagelist

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	ListLanguages(ctx context.Context) ([]catalogstore.StorableLanguage, error)
}

// QueryHandler lists languages by name. It needs no login.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns all languages ordered by name.
func (h QueryHandler) Handle(ctx context.Context, _ Query) ([]core.Language, error) {
	languages, err := h.store.ListLanguages(catalogstore.WithEventualConsistency(ctx))
	if err != nil {
		return nil, err
	}

	return shell.LanguagesFrom(languages), nil
}
