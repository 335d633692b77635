package catalogstore

import (
	"errors"
	"time"
)

var (
	// ErrEmptyCopyID is returned when a StorableBookCopy is built without a copy id.
	ErrEmptyCopyID = errors.New("copy id must not be empty")

	// ErrEmptyISBN is returned when a StorableBookCopy or StorableBook is built without an ISBN.
	ErrEmptyISBN = errors.New("isbn must not be empty")

	// ErrEmptyStatus is returned when a StorableBookCopy is built without a status code.
	ErrEmptyStatus = errors.New("status must not be empty")
)

// StorableBookCopy is a DTO (data transfer object) used by the store engines to persist book copies.
//
// Optional values are represented by their zero value:
// a zero LoanedOn/DueBack is stored as NULL, an empty BorrowerID as well.
type StorableBookCopy struct {
	CopyID     string
	ISBN       string
	Imprint    string
	Status     string
	LoanedOn   time.Time
	DueBack    time.Time
	BorrowerID string
}

// BuildStorableBookCopy is a factory method for StorableBookCopy.
// It returns an error if one of the mandatory scalars is empty.
func BuildStorableBookCopy(
	copyID string,
	isbn string,
	imprint string,
	status string,
	loanedOn time.Time,
	dueBack time.Time,
	borrowerID string,
) (StorableBookCopy, error) {

	if copyID == "" {
		return StorableBookCopy{}, ErrEmptyCopyID
	}

	if isbn == "" {
		return StorableBookCopy{}, ErrEmptyISBN
	}

	if status == "" {
		return StorableBookCopy{}, ErrEmptyStatus
	}

	return StorableBookCopy{
		CopyID:     copyID,
		ISBN:       isbn,
		Imprint:    imprint,
		Status:     status,
		LoanedOn:   loanedOn,
		DueBack:    dueBack,
		BorrowerID: borrowerID,
	}, nil
}

// BookCopyFilter narrows QueryBookCopies and CountBookCopies. Empty fields don't filter.
// Results are always ordered by due date (NULLs last), then copy id.
type BookCopyFilter struct {
	Status     string
	BorrowerID string
	ISBN       string
	DueBefore  time.Time
}
