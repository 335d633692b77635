package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCopyNotOnLoan is returned when an operation needs a copy that is on loan.
	ErrCopyNotOnLoan = errors.New("book copy is not on loan")

	// ErrCopyAlreadyOnLoan is returned when a copy on loan to somebody else should be lent.
	ErrCopyAlreadyOnLoan = errors.New("book copy is already on loan")

	// ErrInvalidStatusChange is returned when the on-loan status should be set manually.
	ErrInvalidStatusChange = errors.New("status on loan can only be set by lending the copy")
)

// BookCopy is one physical, lendable copy of a title.
//
// LoanedOn and DueBack are zero unless Status is Loaned.
type BookCopy struct {
	CopyID     CopyIDString
	ISBN       ISBNString
	Imprint    string
	Status     LoanStatus
	LoanedOn   time.Time
	DueBack    time.Time
	BorrowerID BorrowerIDString
}

// BuildBookCopy creates a new copy in the default status Maintenance.
func BuildBookCopy(copyID uuid.UUID, isbn ISBNString, imprint string) BookCopy {
	return BookCopy{
		CopyID:  copyID.String(),
		ISBN:    isbn,
		Imprint: imprint,
		Status:  DefaultLoanStatus,
	}
}

// Loan puts the copy on loan for the default period of 14 days.
func (c BookCopy) Loan(loanedOn time.Time) BookCopy {
	return c.LoanFor(loanedOn, DefaultLoanPeriod())
}

// LoanFor puts the copy on loan: loaned on the given time, due back after the period.
// A zero loanedOn stands for now.
func (c BookCopy) LoanFor(loanedOn time.Time, period LoanPeriod) BookCopy {
	loanedOn = ToTimestamp(orNow(loanedOn))

	c.LoanedOn = loanedOn
	c.DueBack = period.DueFrom(loanedOn)
	c.Status = Loaned

	return c
}

// IsOverdue reports whether the copy has a due date that lies before now.
func (c BookCopy) IsOverdue(now time.Time) bool {
	return !c.DueBack.IsZero() && c.DueBack.Before(now)
}

// IsOnLoan reports whether the copy is on loan.
func (c BookCopy) IsOnLoan() bool {
	return c.Status == Loaned
}

// IsLentTo reports whether the copy is on loan to the borrower.
func (c BookCopy) IsLentTo(borrowerID BorrowerIDString) bool {
	return c.IsOnLoan() && c.BorrowerID == borrowerID
}

// LendTo links the copy to the borrower.
func (c BookCopy) LendTo(borrowerID BorrowerIDString) BookCopy {
	c.BorrowerID = borrowerID

	return c
}

// Renew moves the due date to renewedOn plus the extension. The loan date stays unchanged.
// A zero renewedOn stands for now.
func (c BookCopy) Renew(renewedOn time.Time, extension LoanPeriod) (BookCopy, error) {
	if !c.IsOnLoan() {
		return c, ErrCopyNotOnLoan
	}

	c.DueBack = extension.DueFrom(ToTimestamp(orNow(renewedOn)))

	return c, nil
}

// Return makes a copy on loan available again and clears the loan.
func (c BookCopy) Return() (BookCopy, error) {
	if !c.IsOnLoan() {
		return c, ErrCopyNotOnLoan
	}

	c.Status = Available

	return c.clearLoan(), nil
}

// ChangeStatus sets Maintenance, Available or Reserved. Leaving Loaned clears the loan.
func (c BookCopy) ChangeStatus(status LoanStatus) (BookCopy, error) {
	if _, err := ParseLoanStatus(status.Code()); err != nil {
		return c, err
	}

	if status == Loaned {
		return c, ErrInvalidStatusChange
	}

	wasOnLoan := c.IsOnLoan()
	c.Status = status

	if wasOnLoan {
		c = c.clearLoan()
	}

	return c, nil
}

func (c BookCopy) clearLoan() BookCopy {
	c.LoanedOn = time.Time{}
	c.DueBack = time.Time{}
	c.BorrowerID = ""

	return c
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}

	return t
}
