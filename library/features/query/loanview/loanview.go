// Package loanview builds the loan rows shared by the loan listing queries.
package loanview

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the lookups needed to describe a copy on loan.
type Store interface {
	GetBook(ctx context.Context, isbn string) (catalogstore.StorableBook, error)
	GetBorrower(ctx context.Context, borrowerID string) (catalogstore.StorableBorrower, error)
}

// LoanInfo is one row of a loan listing.
type LoanInfo struct {
	CopyID           core.CopyIDString
	ISBN             core.ISBNString
	Title            string
	Imprint          string
	Status           core.LoanStatus
	LoanedOn         time.Time
	DueBack          time.Time
	Overdue          bool
	BorrowerID       core.BorrowerIDString
	BorrowerUsername string
}

// Load maps the copies and resolves their titles and, if withUsernames is set, the usernames of the borrowers.
// Titles and borrowers that no longer exist are left empty.
func Load(
	ctx context.Context,
	store Store,
	storables []catalogstore.StorableBookCopy,
	now time.Time,
	withUsernames bool,
) ([]LoanInfo, error) {

	bookCopies, err := shell.BookCopiesFrom(storables)
	if err != nil {
		return nil, err
	}

	titles := make(map[core.ISBNString]string)
	usernames := make(map[core.BorrowerIDString]string)

	for _, bookCopy := range bookCopies {
		if _, seen := titles[bookCopy.ISBN]; !seen {
			book, getErr := store.GetBook(ctx, bookCopy.ISBN)
			if getErr != nil && !errors.Is(getErr, catalogstore.ErrNotFound) {
				return nil, getErr
			}

			titles[bookCopy.ISBN] = book.Title
		}

		if _, seen := usernames[bookCopy.BorrowerID]; withUsernames && bookCopy.BorrowerID != "" && !seen {
			borrower, getErr := store.GetBorrower(ctx, bookCopy.BorrowerID)
			if getErr != nil && !errors.Is(getErr, catalogstore.ErrNotFound) {
				return nil, getErr
			}

			usernames[bookCopy.BorrowerID] = borrower.Username
		}
	}

	return Project(bookCopies, titles, usernames, now), nil
}

// Project turns copies into rows, keeping their order.
func Project(
	bookCopies []core.BookCopy,
	titles map[core.ISBNString]string,
	usernames map[core.BorrowerIDString]string,
	now time.Time,
) []LoanInfo {

	loans := make([]LoanInfo, 0, len(bookCopies))
	for _, bookCopy := range bookCopies {
		loans = append(loans, LoanInfo{
			CopyID:           bookCopy.CopyID,
			ISBN:             bookCopy.ISBN,
			Title:            titles[bookCopy.ISBN],
			Imprint:          bookCopy.Imprint,
			Status:           bookCopy.Status,
			LoanedOn:         bookCopy.LoanedOn,
			DueBack:          bookCopy.DueBack,
			Overdue:          bookCopy.IsOverdue(now),
			BorrowerID:       bookCopy.BorrowerID,
			BorrowerUsername: usernames[bookCopy.BorrowerID],
		})
	}

	return loans
}
