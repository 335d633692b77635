package allloanedbooks

import (
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/loanview"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// LoanedBooks is one page of all loans.
type LoanedBooks struct {
	Loans []loanview.LoanInfo
	Page  shell.PageInfo
}
