package renewbookcopy_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/renewbookcopy"
)

var loanedOn = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

func Test_Decide_Success_RebasesDueDateOnRenewalTime(t *testing.T) {
	// arrange
	bookCopy := core.BuildBookCopy(uuid.New(), "9781098100131", "").Loan(loanedOn).LendTo(uuid.NewString())
	renewedOn := loanedOn.AddDate(0, 0, 10)
	command, err := renewbookcopy.BuildCommand(uuid.New(), 7, renewedOn)
	require.NoError(t, err)

	// act
	result := renewbookcopy.Decide(bookCopy, command)

	// assert
	require.True(t, result.HasChangeToStore())
	assert.Equal(t, renewedOn.AddDate(0, 0, 7), result.BookCopy.DueBack)
	assert.Equal(t, loanedOn, result.BookCopy.LoanedOn)
	assert.Equal(t, core.Loaned, result.BookCopy.Status)
	assert.Equal(t, bookCopy.BorrowerID, result.BookCopy.BorrowerID)
}

func Test_Decide_Idempotent_WhenRenewedTwiceAtTheSameTime(t *testing.T) {
	// arrange
	bookCopy := core.BuildBookCopy(uuid.New(), "9781098100131", "").Loan(loanedOn)
	command, err := renewbookcopy.BuildCommand(uuid.New(), 14, loanedOn)
	require.NoError(t, err)

	// act
	result := renewbookcopy.Decide(bookCopy, command)

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error_WhenCopyIsNotOnLoan(t *testing.T) {
	// arrange
	bookCopy := core.BuildBookCopy(uuid.New(), "9781098100131", "")
	command, err := renewbookcopy.BuildCommand(uuid.New(), 3, loanedOn)
	require.NoError(t, err)

	// act
	result := renewbookcopy.Decide(bookCopy, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrCopyNotOnLoan)
}

func Test_BuildCommand_RejectsExtensionsOutside3_7_14(t *testing.T) {
	for _, days := range []int{-7, 0, 1, 4, 13, 15, 28} {
		_, err := renewbookcopy.BuildCommand(uuid.New(), days, loanedOn)

		assert.ErrorIs(t, err, core.ErrInvalidExtension, "days: %d", days)
		assert.EqualError(t, err, "Please select the amount of days to extend.")
	}
}
