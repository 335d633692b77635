package allloanedbooks

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
	CountBookCopies(ctx context.Context, filter catalogstore.BookCopyFilter) (int, error)
}

// QueryHandler lists all loans for librarians.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with shell.ErrNotLoggedIn or shell.ErrPermissionDenied for non-librarians.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoanedBooks, error) {
	if _, err := shell.RequirePermission(ctx, core.PermissionMarkReturned); err != nil {
		return LoanedBooks{}, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)
	filter := catalogstore.BookCopyFilter{Status: core.Loaned.Code()}

	total, err := h.store.CountBookCopies(ctx, filter)
	if err != nil {
		return LoanedBooks{}, err
	}

	page := shell.NewPageInfo(query.PageNumber, PageSize, total)

	storables, err := h.store.QueryBookCopies(ctx, filter, page.Page())
	if err != nil {
		return LoanedBooks{}, err
	}

	loans, err := loanview.Load(ctx, h.store, storables, query.Now, true)
	if err != nil {
		return LoanedBooks{}, err
	}

	return LoanedBooks{Loans: loans, Page: page}, nil
}
