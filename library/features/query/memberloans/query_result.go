package memberloans

import (
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/loanview"
)

// MemberLoans is a member with all copies linked to them.
type MemberLoans struct {
	Borrower     core.Borrower
	Loans        []loanview.LoanInfo
	OverdueCount int
}
