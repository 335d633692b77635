package catalogsummary

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the counts needed by the QueryHandler.
type Store interface {
	CountBooks(ctx context.Context) (int, error)
	CountAuthors(ctx context.Context) (int, error)
	CountGenres(ctx context.Context) (int, error)
	CountLanguages(ctx context.Context) (int, error)
	CountBookCopies(ctx context.Context, filter catalogstore.BookCopyFilter) (int, error)
}

// QueryHandler reads the counts and updates the visit counter of the session.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle runs all counts concurrently. Without a session in ctx the visit count is 0.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Summary, error) {
	ctx = catalogstore.WithEventualConsistency(ctx)

	var summary Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { summary.NumBooks, err = h.store.CountBooks(gctx); return err })
	g.Go(func() (err error) { summary.NumAuthors, err = h.store.CountAuthors(gctx); return err })
	g.Go(func() (err error) { summary.NumGenres, err = h.store.CountGenres(gctx); return err })
	g.Go(func() (err error) { summary.NumLanguages, err = h.store.CountLanguages(gctx); return err })
	g.Go(func() (err error) {
		summary.NumCopies, err = h.store.CountBookCopies(gctx, catalogstore.BookCopyFilter{})
		return err
	})
	g.Go(func() (err error) {
		summary.NumCopiesAvailable, err = h.store.CountBookCopies(gctx, catalogstore.BookCopyFilter{
			Status: core.Available.Code(),
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	if session, ok := shell.SessionFrom(ctx); ok {
		summary.NumVisits = session.Visit()
	}

	return summary, nil
}
