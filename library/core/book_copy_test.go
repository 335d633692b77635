package core_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

func Test_BuildBookCopy_StartsInMaintenance_WithoutLoan(t *testing.T) {
	// act
	bookCopy := core.BuildBookCopy(uuid.New(), "9781098100131", "First Edition")

	// assert
	assert.Equal(t, core.Maintenance, bookCopy.Status)
	assert.True(t, bookCopy.LoanedOn.IsZero())
	assert.True(t, bookCopy.DueBack.IsZero())
	assert.Empty(t, bookCopy.BorrowerID)
}

func Test_Loan_UsesDefaultPeriodOf14Days(t *testing.T) {
	// arrange
	loanedOn := time.Date(2023, 3, 10, 9, 30, 0, 0, time.UTC)
	bookCopy := core.BuildBookCopy(uuid.New(), "9781098100131", "")

	// act
	loaned := bookCopy.Loan(loanedOn)

	// assert
	assert.Equal(t, core.Loaned, loaned.Status)
	assert.Equal(t, loanedOn, loaned.LoanedOn)
	assert.Equal(t, loanedOn.Add(14*24*time.Hour), loaned.DueBack)
}

func Test_LoanFor_ComputesDueDate_ForAcceptedPeriods(t *testing.T) {
	for _, days := range []int{3, 7, 14} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			// arrange
			loanedOn := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
			period, err := core.BuildLoanPeriod(days)
			require.NoError(t, err)

			// act
			loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").LoanFor(loanedOn, period)

			// assert
			assert.Equal(t, core.Loaned, loaned.Status)
			assert.Equal(t, loaned.LoanedOn.Add(time.Duration(days)*24*time.Hour), loaned.DueBack)
		})
	}
}

func Test_LoanFor_LongPeriods_DueAfterLoanDate(t *testing.T) {
	for _, days := range []int{1000, core.MaxLoanDays} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			// arrange
			loanedOn := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
			period, err := core.BuildLoanPeriod(days)
			require.NoError(t, err)

			// act
			loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").LoanFor(loanedOn, period)

			// assert
			assert.Equal(t, loanedOn.AddDate(0, 0, days), loaned.DueBack)
			assert.True(t, loaned.DueBack.After(loaned.LoanedOn))
			assert.False(t, loaned.IsOverdue(loanedOn))
		})
	}
}

func Test_LoanFor_ZeroLoanDate_MeansNow(t *testing.T) {
	// setup
	before := time.Now().Add(-time.Second)

	// act
	loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").LoanFor(time.Time{}, core.DefaultLoanPeriod())

	// assert
	assert.False(t, loaned.LoanedOn.IsZero())
	assert.True(t, loaned.LoanedOn.After(before))
	assert.Equal(t, loaned.LoanedOn.AddDate(0, 0, core.DefaultLoanDays), loaned.DueBack)
}

func Test_LoanFor_OnNewYear_With7Days(t *testing.T) {
	// arrange
	loanedOn := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	period, err := core.BuildLoanPeriod(7)
	require.NoError(t, err)

	// act
	loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").LoanFor(loanedOn, period)

	// assert
	assert.Equal(t, time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC), loaned.DueBack)
	assert.Equal(t, core.Loaned, loaned.Status)
}

func Test_LoanFor_ZeroPeriod_FallsBackToDefault(t *testing.T) {
	// arrange
	loanedOn := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	// act
	loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").LoanFor(loanedOn, core.LoanPeriod{})

	// assert
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), loaned.DueBack)
}

func Test_LoanFor_NormalizesToUTCMicroseconds(t *testing.T) {
	// arrange
	berlin := time.FixedZone("CET", 3600)
	loanedOn := time.Date(2023, 1, 1, 1, 0, 0, 123456789, berlin)

	// act
	loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").Loan(loanedOn)

	// assert
	assert.Equal(t, time.UTC, loaned.LoanedOn.Location())
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 123456000, time.UTC), loaned.LoanedOn)
}

func Test_IsOverdue(t *testing.T) {
	now := time.Date(2023, 5, 20, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		dueBack  time.Time
		expected bool
	}{
		{name: "without due date", dueBack: time.Time{}, expected: false},
		{name: "due yesterday", dueBack: now.Add(-24 * time.Hour), expected: true},
		{name: "due a second ago", dueBack: now.Add(-time.Second), expected: true},
		{name: "due right now", dueBack: now, expected: false},
		{name: "due tomorrow", dueBack: now.Add(24 * time.Hour), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			bookCopy := core.BookCopy{Status: core.Loaned, DueBack: tc.dueBack}

			// act + assert
			assert.Equal(t, tc.expected, bookCopy.IsOverdue(now))
		})
	}
}

func Test_Renew_RebasesDueDate_AndKeepsLoanDate(t *testing.T) {
	// arrange
	loanedOn := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	renewedOn := time.Date(2023, 1, 10, 8, 0, 0, 0, time.UTC)
	loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").Loan(loanedOn)
	extension, err := core.ValidateExtension(7)
	require.NoError(t, err)

	// act
	renewed, err := loaned.Renew(renewedOn, extension)

	// assert
	require.NoError(t, err)
	assert.Equal(t, loanedOn, renewed.LoanedOn)
	assert.Equal(t, renewedOn.Add(7*24*time.Hour), renewed.DueBack)
	assert.Equal(t, core.Loaned, renewed.Status)
}

func Test_Renew_Fails_WhenNotOnLoan(t *testing.T) {
	// arrange
	bookCopy := core.BuildBookCopy(uuid.New(), "9781098100131", "")

	// act
	_, err := bookCopy.Renew(time.Now(), core.DefaultLoanPeriod())

	// assert
	assert.ErrorIs(t, err, core.ErrCopyNotOnLoan)
}

func Test_Return_MakesCopyAvailable_AndClearsLoan(t *testing.T) {
	// arrange
	borrowerID := uuid.NewString()
	loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "Second Edition").
		Loan(time.Now()).
		LendTo(borrowerID)

	// act
	returned, err := loaned.Return()

	// assert
	require.NoError(t, err)
	expected := core.BookCopy{
		CopyID:  loaned.CopyID,
		ISBN:    "9781098100131",
		Imprint: "Second Edition",
		Status:  core.Available,
	}
	if diff := cmp.Diff(expected, returned); diff != "" {
		t.Errorf("returned copy mismatch (-want +got):\n%s", diff)
	}
}

func Test_Return_Fails_WhenNotOnLoan(t *testing.T) {
	// act
	_, err := core.BuildBookCopy(uuid.New(), "9781098100131", "").Return()

	// assert
	assert.ErrorIs(t, err, core.ErrCopyNotOnLoan)
}

func Test_ChangeStatus(t *testing.T) {
	loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").
		Loan(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)).
		LendTo(uuid.NewString())

	t.Run("to reserved clears the loan", func(t *testing.T) {
		// act
		changed, err := loaned.ChangeStatus(core.Reserved)

		// assert
		require.NoError(t, err)
		assert.Equal(t, core.Reserved, changed.Status)
		assert.True(t, changed.LoanedOn.IsZero())
		assert.True(t, changed.DueBack.IsZero())
		assert.Empty(t, changed.BorrowerID)
	})

	t.Run("to loaned is rejected", func(t *testing.T) {
		// act
		_, err := core.BuildBookCopy(uuid.New(), "9781098100131", "").ChangeStatus(core.Loaned)

		// assert
		assert.ErrorIs(t, err, core.ErrInvalidStatusChange)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		// act
		_, err := loaned.ChangeStatus(core.LoanStatus("x"))

		// assert
		assert.ErrorIs(t, err, core.ErrUnknownLoanStatus)
	})

	t.Run("between statuses without loan keeps the rest", func(t *testing.T) {
		// arrange
		bookCopy := core.BuildBookCopy(uuid.New(), "9781098100131", "imprint")

		// act
		changed, err := bookCopy.ChangeStatus(core.Available)

		// assert
		require.NoError(t, err)
		assert.Equal(t, core.Available, changed.Status)
		assert.Equal(t, "imprint", changed.Imprint)
	})
}

func Test_IsLentTo(t *testing.T) {
	// arrange
	borrowerID := uuid.NewString()
	loaned := core.BuildBookCopy(uuid.New(), "9781098100131", "").Loan(time.Now()).LendTo(borrowerID)

	// act + assert
	assert.True(t, loaned.IsLentTo(borrowerID))
	assert.False(t, loaned.IsLentTo(uuid.NewString()))
}
