package core_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

func Test_BuildAuthor_DerivesSearchName_AndURL(t *testing.T) {
	// arrange
	authorID := uuid.New()

	// act
	author, err := core.BuildAuthor(authorID, "Dr.", "Ursula", "Le Guin", "", time.Date(1929, 10, 21, 0, 0, 0, 0, time.UTC), time.Time{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ursula Le Guin", author.Name)
	assert.Equal(t, "Ursula Le Guin", author.Display())
	assert.Equal(t, "/catalog/authors/"+authorID.String(), author.URL())
	assert.True(t, author.DeathDate.IsZero())
}

func Test_BuildAuthor_RejectsTooLongNameParts(t *testing.T) {
	testCases := []struct {
		name      string
		prefix    string
		firstName string
		lastName  string
		suffix    string
	}{
		{name: "prefix", prefix: "Prof.", firstName: "A", lastName: "B"},
		{name: "first name", firstName: strings.Repeat("a", 21), lastName: "B"},
		{name: "last name", firstName: "A", lastName: strings.Repeat("b", 31)},
		{name: "suffix", firstName: "A", lastName: "B", suffix: "Junior"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.BuildAuthor(uuid.New(), tc.prefix, tc.firstName, tc.lastName, tc.suffix, time.Time{}, time.Time{})
			assert.ErrorIs(t, err, core.ErrFieldTooLong)
		})
	}
}

func Test_BuildAuthor_RejectsDeathBeforeBirth(t *testing.T) {
	_, err := core.BuildAuthor(
		uuid.New(), "", "A", "B", "",
		time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
	)

	assert.ErrorIs(t, err, core.ErrDeathBeforeBirth)
}

func Test_BuildBook_NormalizesISBN_AndDisplaysAuthors(t *testing.T) {
	// arrange
	first, err := core.BuildAuthor(uuid.New(), "", "Vlad", "Khononov", "", time.Time{}, time.Time{})
	require.NoError(t, err)
	second, err := core.BuildAuthor(uuid.New(), "", "Eric", "Evans", "", time.Time{}, time.Time{})
	require.NoError(t, err)

	// act
	book, err := core.BuildBook(
		"978-1-098-10013-1",
		"Learning Domain-Driven Design",
		"",
		time.Date(2021, 10, 1, 15, 0, 0, 0, time.UTC),
		"",
		"",
		[]core.AuthorIDString{first.AuthorID, second.AuthorID},
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "9781098100131", book.ISBN)
	assert.Equal(t, time.Date(2021, 10, 1, 0, 0, 0, 0, time.UTC), book.PubDate)
	assert.Equal(t, "Learning Domain-Driven Design by Vlad Khononov, Eric Evans", book.Display([]core.Author{first, second}))
}

func Test_BuildBook_Validation(t *testing.T) {
	_, err := core.BuildBook("97810981001310", "Title", "", time.Time{}, "", "", nil)
	assert.ErrorIs(t, err, core.ErrInvalidISBN)

	_, err = core.BuildBook("97A", "Title", "", time.Time{}, "", "", nil)
	assert.ErrorIs(t, err, core.ErrInvalidISBN)

	_, err = core.BuildBook("123", strings.Repeat("t", 101), "", time.Time{}, "", "", nil)
	assert.ErrorIs(t, err, core.ErrFieldTooLong)

	_, err = core.BuildBook("123", "", "", time.Time{}, "", "", nil)
	assert.ErrorIs(t, err, core.ErrFieldRequired)

	_, err = core.BuildBook("123", "Title", strings.Repeat("s", 1001), time.Time{}, "", "", nil)
	assert.ErrorIs(t, err, core.ErrFieldTooLong)
}

func Test_BuildBorrower_DefaultsDisplayName(t *testing.T) {
	borrower, err := core.BuildBorrower(uuid.New(), "reader1", "")

	require.NoError(t, err)
	assert.Equal(t, "reader1", borrower.DisplayName)

	_, err = core.BuildBorrower(uuid.New(), "", "")
	assert.ErrorIs(t, err, core.ErrFieldRequired)
}

func Test_Permissions(t *testing.T) {
	permissions := core.ParsePermissions([]string{"can_mark_returned", "can_fly"})

	assert.True(t, permissions.Has(core.PermissionMarkReturned))
	assert.False(t, permissions.Has(core.PermissionChangeStatus))
	assert.Len(t, permissions, 1)
}

func Test_BuildGenre_And_BuildLanguage(t *testing.T) {
	genre, err := core.BuildGenre("scifi", "Science Fiction")
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", genre.Name)

	_, err = core.BuildLanguage("en", strings.Repeat("x", 201))
	assert.ErrorIs(t, err, core.ErrFieldTooLong)
}

func Test_DecisionResult(t *testing.T) {
	idempotent := core.IdempotentDecision()
	assert.True(t, idempotent.IsIdempotent())
	assert.False(t, idempotent.HasChangeToStore())
	assert.NoError(t, idempotent.HasError())

	success := core.SuccessDecision(core.BookCopy{CopyID: "x"})
	assert.True(t, success.HasChangeToStore())
	assert.Equal(t, "x", success.BookCopy.CopyID)

	failed := core.ErrorDecision(core.ErrCopyNotOnLoan)
	assert.False(t, failed.HasChangeToStore())
	assert.ErrorIs(t, failed.HasError(), core.ErrCopyNotOnLoan)
}
