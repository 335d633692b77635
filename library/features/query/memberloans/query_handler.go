package memberloans

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
	GetBorrowerByUsername(ctx context.Context, username string) (catalogstore.StorableBorrower, error)
	QueryBookCopies(ctx context.Context, filter catalogstore.BookCopyFilter, page catalogstore.Page) ([]catalogstore.StorableBookCopy, error)
}

// QueryHandler shows one member to librarians.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with catalogstore.ErrNotFound for unknown usernames.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberLoans, error) {
	if _, err := shell.RequirePermission(ctx, core.PermissionMarkReturned); err != nil {
		return MemberLoans{}, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	borrower, err := h.store.GetBorrowerByUsername(ctx, query.Username)
	if err != nil {
		return MemberLoans{}, err
	}

	storables, err := h.store.QueryBookCopies(ctx, catalogstore.BookCopyFilter{
		BorrowerID: borrower.BorrowerID,
	}, catalogstore.Page{})
	if err != nil {
		return MemberLoans{}, err
	}

	loans, err := loanview.Load(ctx, h.store, storables, query.Now, false)
	if err != nil {
		return MemberLoans{}, err
	}

	result := MemberLoans{
		Borrower: shell.BorrowerFrom(borrower),
		Loans:    loans,
	}

	for _, loan := range loans {
		if loan.Overdue {
			result.OverdueCount++
		}
	}

	return result, nil
}
