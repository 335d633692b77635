package loanedbooksbyborrower

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

// QueryHandler lists the loans of the principal in the context.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with shell.ErrNotLoggedIn without a principal.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoanedBooks, error) {
	principal, err := shell.RequireLogin(ctx)
	if err != nil {
		return LoanedBooks{}, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	filter := catalogstore.BookCopyFilter{
		Status:     core.Loaned.Code(),
		BorrowerID: principal.BorrowerID,
	}

	total, err := h.store.CountBookCopies(ctx, filter)
	if err != nil {
		return LoanedBooks{}, err
	}

	page := shell.NewPageInfo(query.PageNumber, PageSize, total)

	storables, err := h.store.QueryBookCopies(ctx, filter, page.Page())
	if err != nil {
		return LoanedBooks{}, err
	}

	loans, err := loanview.Load(ctx, h.store, storables, query.Now, false)
	if err != nil {
		return LoanedBooks{}, err
	}

	return LoanedBooks{
		BorrowerID: principal.BorrowerID,
		Loans:      loans,
		Page:       page,
	}, nil
}
