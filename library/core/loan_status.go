package core

import (
	"errors"
	"fmt"
)

// ErrUnknownLoanStatus is returned for status codes outside of m, o, a and r.
var ErrUnknownLoanStatus = errors.New("unknown loan status")

// LoanStatus is the availability of a book copy. The values are the storage codes.
type LoanStatus string

const (
	// Maintenance is the status of new copies and copies being repaired.
	Maintenance LoanStatus = "m"

	// Loaned means the copy is on loan to a borrower.
	Loaned LoanStatus = "o"

	// Available means the copy can be lent.
	Available LoanStatus = "a"

	// Reserved means the copy is held back for a borrower.
	Reserved LoanStatus = "r"
)

// DefaultLoanStatus is the status of a newly created copy.
const DefaultLoanStatus = Maintenance

// LoanStatuses lists all statuses in display order.
func LoanStatuses() []LoanStatus {
	return []LoanStatus{Maintenance, Loaned, Available, Reserved}
}

// ParseLoanStatus converts a storage code into a LoanStatus.
func ParseLoanStatus(code string) (LoanStatus, error) {
	switch status := LoanStatus(code); status {
	case Maintenance, Loaned, Available, Reserved:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLoanStatus, code)
	}
}

// Code returns the storage code.
func (s LoanStatus) Code() string {
	return string(s)
}

// Label returns the human readable name.
func (s LoanStatus) Label() string {
	switch s {
	case Maintenance:
		return "Maintenance"
	case Loaned:
		return "On loan"
	case Available:
		return "Available"
	case Reserved:
		return "Reserved"
	default:
		return "Unknown"
	}
}

func (s LoanStatus) String() string {
	return s.Label()
}
