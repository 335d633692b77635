package returnbookcopy_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/returnbookcopy"
)

func Test_Decide(t *testing.T) {
	now := time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC)
	base := core.BuildBookCopy(uuid.New(), "9781098100131", "")

	t.Run("copy on loan becomes available", func(t *testing.T) {
		lent := base.Loan(now.AddDate(0, 0, -10)).LendTo(uuid.NewString())

		result := returnbookcopy.Decide(lent, returnbookcopy.BuildCommand(uuid.New(), now))

		require.True(t, result.HasChangeToStore())
		assert.Equal(t, core.Available, result.BookCopy.Status)
		assert.True(t, result.BookCopy.LoanedOn.IsZero())
		assert.True(t, result.BookCopy.DueBack.IsZero())
		assert.Empty(t, result.BookCopy.BorrowerID)
	})

	for _, status := range []core.LoanStatus{core.Maintenance, core.Available, core.Reserved} {
		t.Run("nothing to do for "+status.Label(), func(t *testing.T) {
			bookCopy := base
			bookCopy.Status = status

			result := returnbookcopy.Decide(bookCopy, returnbookcopy.BuildCommand(uuid.New(), now))

			assert.True(t, result.IsIdempotent())
		})
	}
}
