package loanedbooksbyborrower

import (
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/loanview"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// LoanedBooks is one page of the member's loans.
type LoanedBooks struct {
	BorrowerID string
	Loans      []loanview.LoanInfo
	Page       shell.PageInfo
}
