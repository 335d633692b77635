package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	pollscore "github.com/AntonStoeckl/library-catalog-go/polls/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
	"github.com/AntonStoeckl/library-catalog-go/testutil/helper/enginewrapper"
)

// FixtureISBN is the ISBN of the default fixture book.
const FixtureISBN = "9781098100131"

// NewEngine returns a migrated engine for the adapter selected by ADAPTER_TYPE (in-memory sqlite by default).
func NewEngine(t testing.TB, options ...sqlengine.Option) *sqlengine.Engine {
	t.Helper()

	return enginewrapper.CreateWrapper(t, options...).GetEngine()
}

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// FixtureClock is a fixed point in time for deterministic tests.
func FixtureClock() time.Time {
	return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
}

func FixtureAuthor(t testing.TB) core.Author {
	author, err := core.BuildAuthor(
		GivenUniqueID(t),
		"",
		"Vlad",
		"Khononov",
		"",
		time.Date(1984, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Time{},
	)
	require.NoError(t, err, "error in arranging test data")

	return author
}

func FixtureBook(t testing.TB, isbn string, authorIDs ...string) core.Book {
	book, err := core.BuildBook(
		isbn,
		"Learning Domain-Driven Design",
		"Aligning software architecture and business strategy",
		time.Date(2021, 10, 1, 0, 0, 0, 0, time.UTC),
		"tech",
		"en",
		authorIDs,
	)
	require.NoError(t, err, "error in arranging test data")

	return book
}

// GivenCatalog stores the genre "tech", the language "en", an author and the fixture book with that author.
func GivenCatalog(t testing.TB, ctx context.Context, engine *sqlengine.Engine) (core.Book, core.Author) {
	t.Helper()

	genre, err := core.BuildGenre("tech", "Technology")
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, engine.CreateGenre(ctx, shell.StorableGenreFrom(genre)), "error in arranging test data")

	language, err := core.BuildLanguage("en", "English")
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, engine.CreateLanguage(ctx, shell.StorableLanguageFrom(language)), "error in arranging test data")

	author := FixtureAuthor(t)
	require.NoError(t, engine.CreateAuthor(ctx, shell.StorableAuthorFrom(author)), "error in arranging test data")

	book := FixtureBook(t, FixtureISBN, author.AuthorID)
	require.NoError(t, engine.CreateBook(ctx, shell.StorableBookFrom(book)), "error in arranging test data")

	return book, author
}

// GivenBookCopy stores a copy of the book in Maintenance, changed by the given functions before storing.
func GivenBookCopy(
	t testing.TB,
	ctx context.Context,
	engine *sqlengine.Engine,
	isbn string,
	changes ...func(core.BookCopy) core.BookCopy,
) core.BookCopy {

	t.Helper()

	bookCopy := core.BuildBookCopy(GivenUniqueID(t), isbn, "First Edition, O'Reilly Media")
	for _, change := range changes {
		bookCopy = change(bookCopy)
	}

	storable, err := shell.StorableBookCopyFrom(bookCopy)
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, engine.CreateBookCopy(ctx, storable), "error in arranging test data")

	return bookCopy
}

// LentTo returns a change for GivenBookCopy that puts the copy on loan to the borrower.
func LentTo(borrowerID string, loanedOn time.Time) func(core.BookCopy) core.BookCopy {
	return func(bookCopy core.BookCopy) core.BookCopy {
		return bookCopy.Loan(loanedOn).LendTo(borrowerID)
	}
}

// WithStatus returns a change for GivenBookCopy that sets a status other than Loaned.
func WithStatus(status core.LoanStatus) func(core.BookCopy) core.BookCopy {
	return func(bookCopy core.BookCopy) core.BookCopy {
		bookCopy.Status = status
		return bookCopy
	}
}

func GivenBorrower(t testing.TB, ctx context.Context, engine *sqlengine.Engine, username string) core.Borrower {
	t.Helper()

	borrower, err := core.BuildBorrower(GivenUniqueID(t), username, "")
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, engine.CreateBorrower(ctx, shell.StorableBorrowerFrom(borrower)), "error in arranging test data")

	return borrower
}

// GivenQuestion stores a question published at pubDate with one choice per text.
func GivenQuestion(
	t testing.TB,
	ctx context.Context,
	engine *sqlengine.Engine,
	text string,
	pubDate time.Time,
	choiceTexts ...string,
) pollscore.Question {

	t.Helper()

	question, err := pollscore.BuildQuestion(GivenUniqueID(t), text, pubDate)
	require.NoError(t, err, "error in arranging test data")

	for _, choiceText := range choiceTexts {
		choice, choiceErr := pollscore.BuildChoice(GivenUniqueID(t), question.QuestionID, choiceText)
		require.NoError(t, choiceErr, "error in arranging test data")
		question.Choices = append(question.Choices, choice)
	}

	require.NoError(t, engine.CreateQuestion(ctx, shell.StorableQuestionFrom(question)), "error in arranging test data")

	return question
}

// MemberContext returns a context logged in as the borrower without permissions.
func MemberContext(ctx context.Context, borrower core.Borrower) context.Context {
	return shell.WithPrincipal(ctx, shell.Principal{
		BorrowerID: borrower.BorrowerID,
		Username:   borrower.Username,
	})
}

// LibrarianContext returns a context logged in as the borrower with all staff permissions.
func LibrarianContext(ctx context.Context, borrower core.Borrower) context.Context {
	return shell.WithPrincipal(ctx, shell.Principal{
		BorrowerID:  borrower.BorrowerID,
		Username:    borrower.Username,
		Permissions: core.Permissions{core.PermissionMarkReturned, core.PermissionChangeStatus},
	})
}
