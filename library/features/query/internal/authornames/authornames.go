// Package authornames resolves author ids of books to authors, keeping the order of the book.
package authornames

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the lookup needed to resolve an author.
type Store interface {
	GetAuthor(ctx context.Context, authorID string) (catalogstore.StorableAuthor, error)
}

// Resolver caches authors for the lifetime of one query.
type Resolver struct {
	store   Store
	authors map[core.AuthorIDString]core.Author
	missing map[core.AuthorIDString]bool
}

// NewResolver creates a Resolver with an empty cache.
func NewResolver(store Store) *Resolver {
	return &Resolver{
		store:   store,
		authors: make(map[core.AuthorIDString]core.Author),
		missing: make(map[core.AuthorIDString]bool),
	}
}

// Resolve returns the authors of the ids in the given order, skipping ids of deleted authors.
func (r *Resolver) Resolve(ctx context.Context, authorIDs []core.AuthorIDString) ([]core.Author, error) {
	authors := make([]core.Author, 0, len(authorIDs))

	for _, authorID := range authorIDs {
		if r.missing[authorID] {
			continue
		}

		if author, ok := r.authors[authorID]; ok {
			authors = append(authors, author)
			continue
		}

		storable, err := r.store.GetAuthor(ctx, authorID)
		if errors.Is(err, catalogstore.ErrNotFound) {
			r.missing[authorID] = true
			continue
		}

		if err != nil {
			return nil, err
		}

		author := shell.AuthorFrom(storable)
		r.authors[authorID] = author
		authors = append(authors, author)
	}

	return authors, nil
}
