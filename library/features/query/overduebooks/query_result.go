package overduebooks

import (
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/loanview"
)

// OverdueBooks lists all overdue loans, longest overdue first.
type OverdueBooks struct {
	Loans []loanview.LoanInfo
	Count int
}
