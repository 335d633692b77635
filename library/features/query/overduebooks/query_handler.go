package overduebooks

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/loanview"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	loanview.Store
	QueryBookCopies(ctx context.Context, filter catalogstore.BookCopyFilter, page catalogstore.Page) ([]catalogstore.StorableBookCopy, error)
}

// QueryHandler lists overdue loans for librarians.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with shell.ErrNotLoggedIn or shell.ErrPermissionDenied for non-librarians.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueBooks, error) {
	if _, err := shell.RequirePermission(ctx, core.PermissionMarkReturned); err != nil {
		return OverdueBooks{}, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	storables, err := h.store.QueryBookCopies(ctx, catalogstore.BookCopyFilter{
		Status:    core.Loaned.Code(),
		DueBefore: query.Now,
	}, catalogstore.Page{})
	if err != nil {
		return OverdueBooks{}, err
	}

	loans, err := loanview.Load(ctx, h.store, storables, query.Now, true)
	if err != nil {
		return OverdueBooks{}, err
	}

	return OverdueBooks{Loans: loans, Count: len(loans)}, nil
}
