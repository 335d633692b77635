package core

import (
	"errors"
	"time"
)

const (
	// DefaultLoanDays is the loan period used when none is given.
	DefaultLoanDays = 14

	// MaxLoanDays is the longest loan period, about ten years.
	MaxLoanDays = 3650

	// ExtensionHelpText explains the accepted extension values to a user.
	ExtensionHelpText = "Select 3, 7, or 14 days for an extension from now."
)

var (
	// ErrInvalidExtension is returned by ValidateExtension, its message is meant for users.
	ErrInvalidExtension = errors.New("Please select the amount of days to extend.") //nolint:staticcheck // user-facing message

	// ErrNonPositiveLoanPeriod is returned when a loan period of zero or less days is requested.
	ErrNonPositiveLoanPeriod = errors.New("loan period must be a positive number of days")

	// ErrLoanPeriodTooLong is returned when a loan period of more than MaxLoanDays is requested.
	ErrLoanPeriodTooLong = errors.New("loan period must not exceed 3650 days")
)

// allowedExtensionDays are the only renewal periods a librarian can choose.
var allowedExtensionDays = []int{3, 7, 14}

// LoanPeriod is a positive number of whole days.
// The zero value stands for the default period of 14 days.
type LoanPeriod struct {
	days int
}

// DefaultLoanPeriod returns the 14 days period.
func DefaultLoanPeriod() LoanPeriod {
	return LoanPeriod{days: DefaultLoanDays}
}

// BuildLoanPeriod creates a LoanPeriod of 1 to MaxLoanDays days.
func BuildLoanPeriod(days int) (LoanPeriod, error) {
	if days <= 0 {
		return LoanPeriod{}, ErrNonPositiveLoanPeriod
	}

	if days > MaxLoanDays {
		return LoanPeriod{}, ErrLoanPeriodTooLong
	}

	return LoanPeriod{days: days}, nil
}

// Days returns the number of days, resolving the zero value to the default.
func (p LoanPeriod) Days() int {
	if p.days == 0 {
		return DefaultLoanDays
	}

	return p.days
}

// DueFrom returns the date the period ends when it starts at start.
func (p LoanPeriod) DueFrom(start time.Time) time.Time {
	return start.AddDate(0, 0, p.Days())
}

// ExtensionChoices returns the accepted extension values in days.
func ExtensionChoices() []int {
	return append([]int(nil), allowedExtensionDays...)
}

// ValidateExtension accepts exactly 3, 7 or 14 days.
func ValidateExtension(days int) (LoanPeriod, error) {
	for _, allowed := range allowedExtensionDays {
		if days == allowed {
			return LoanPeriod{days: days}, nil
		}
	}

	return LoanPeriod{}, ErrInvalidExtension
}
