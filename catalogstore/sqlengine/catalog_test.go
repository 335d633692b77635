package sqlengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_Catalog_GetBook_ReturnsBookWithAuthorsInOrder(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// arrange
	_, firstAuthor := GivenCatalog(t, ctx, engine)
	secondAuthor, err := core.BuildAuthor(GivenUniqueID(t), "", "Eric", "Evans", "", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NoError(t, engine.CreateAuthor(ctx, shell.StorableAuthorFrom(secondAuthor)))

	book := FixtureBook(t, "9780321125217", secondAuthor.AuthorID, firstAuthor.AuthorID)
	book.Title = "Domain-Driven Design"
	require.NoError(t, engine.CreateBook(ctx, shell.StorableBookFrom(book)))

	// act
	stored, err := engine.GetBook(ctx, "9780321125217")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Domain-Driven Design", stored.Title)
	assert.Equal(t, "tech", stored.GenreID)
	assert.Equal(t, "en", stored.LanguageID)
	assert.True(t, book.PubDate.Equal(stored.PubDate), "pub date: %s", stored.PubDate)
	assert.Equal(t, []string{secondAuthor.AuthorID, firstAuthor.AuthorID}, stored.AuthorIDs)
}

func Test_Catalog_GetBook_ShouldFail_WhenBookDoesNotExist(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// act
	_, err := engine.GetBook(ctx, "9780000000000")

	// assert
	assert.ErrorIs(t, err, catalogstore.ErrNotFound)
}

func Test_Catalog_ListBooks_OrdersByTitle_AndPages(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// arrange
	_, author := GivenCatalog(t, ctx, engine)
	for isbn, title := range map[string]string{"1111111111": "Accelerate", "2222222222": "Team Topologies"} {
		book := FixtureBook(t, isbn, author.AuthorID)
		book.Title = title
		require.NoError(t, engine.CreateBook(ctx, shell.StorableBookFrom(book)))
	}

	// act
	firstPage, err := engine.ListBooks(ctx, catalogstore.FirstPage(2))
	secondPage, secondErr := engine.ListBooks(ctx, catalogstore.PageNumber(2, 2))
	total, countErr := engine.CountBooks(ctx)

	// assert
	require.NoError(t, err)
	require.NoError(t, secondErr)
	require.NoError(t, countErr)
	require.Len(t, firstPage, 2)
	assert.Equal(t, "Accelerate", firstPage[0].Title)
	assert.Equal(t, "Learning Domain-Driven Design", firstPage[1].Title)
	require.Len(t, secondPage, 1)
	assert.Equal(t, "Team Topologies", secondPage[0].Title)
	assert.Equal(t, []string{author.AuthorID}, secondPage[0].AuthorIDs)
	assert.Equal(t, 3, total)
}

func Test_Catalog_QueryBooksByAuthor(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// arrange
	book, author := GivenCatalog(t, ctx, engine)
	otherAuthor, err := core.BuildAuthor(GivenUniqueID(t), "", "Martin", "Fowler", "", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NoError(t, engine.CreateAuthor(ctx, shell.StorableAuthorFrom(otherAuthor)))
	require.NoError(t, engine.CreateBook(ctx, shell.StorableBookFrom(FixtureBook(t, "9780134757599", otherAuthor.AuthorID))))

	// act
	books, err := engine.QueryBooksByAuthor(ctx, author.AuthorID)

	// assert
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, book.ISBN, books[0].ISBN)
	assert.Equal(t, []string{author.AuthorID}, books[0].AuthorIDs)
}

func Test_Catalog_Authors(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// arrange
	_, khononov := GivenCatalog(t, ctx, engine)
	evans, err := core.BuildAuthor(
		GivenUniqueID(t), "", "Eric", "Evans", "",
		time.Date(1962, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2062, 5, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NoError(t, engine.CreateAuthor(ctx, shell.StorableAuthorFrom(evans)))

	// act
	stored, getErr := engine.GetAuthor(ctx, evans.AuthorID)
	authors, listErr := engine.ListAuthors(ctx, catalogstore.FirstPage(10))
	total, countErr := engine.CountAuthors(ctx)
	_, missingErr := engine.GetAuthor(ctx, GivenUniqueID(t).String())

	// assert
	require.NoError(t, getErr)
	assert.Equal(t, "Eric Evans", stored.Name)
	assert.True(t, evans.BirthDate.Equal(stored.BirthDate))
	assert.True(t, evans.DeathDate.Equal(stored.DeathDate))

	require.NoError(t, listErr)
	require.Len(t, authors, 2)
	assert.Equal(t, evans.AuthorID, authors[0].AuthorID)
	assert.Equal(t, khononov.AuthorID, authors[1].AuthorID)
	assert.True(t, authors[1].DeathDate.IsZero())

	require.NoError(t, countErr)
	assert.Equal(t, 2, total)
	assert.ErrorIs(t, missingErr, catalogstore.ErrNotFound)
}

func Test_Catalog_GenresAndLanguages(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// arrange
	GivenCatalog(t, ctx, engine)
	fantasy, err := core.BuildGenre("fantasy", "Fantasy")
	require.NoError(t, err)
	require.NoError(t, engine.CreateGenre(ctx, shell.StorableGenreFrom(fantasy)))
	german, err := core.BuildLanguage("de", "German")
	require.NoError(t, err)
	require.NoError(t, engine.CreateLanguage(ctx, shell.StorableLanguageFrom(german)))

	// act
	genres, genresErr := engine.ListGenres(ctx)
	languages, languagesErr := engine.ListLanguages(ctx)
	genreCount, genreCountErr := engine.CountGenres(ctx)
	languageCount, languageCountErr := engine.CountLanguages(ctx)

	// assert
	require.NoError(t, genresErr)
	require.NoError(t, languagesErr)
	require.NoError(t, genreCountErr)
	require.NoError(t, languageCountErr)
	assert.Equal(t, []catalogstore.StorableGenre{{GenreID: "fantasy", Name: "Fantasy"}, {GenreID: "tech", Name: "Technology"}}, genres)
	assert.Equal(t, []catalogstore.StorableLanguage{{LanguageID: "en", Name: "English"}, {LanguageID: "de", Name: "German"}}, languages)
	assert.Equal(t, 2, genreCount)
	assert.Equal(t, 2, languageCount)
}

func Test_Catalog_Borrowers(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// arrange
	jdoe := GivenBorrower(t, ctx, engine, "jdoe")
	GivenBorrower(t, ctx, engine, "alice")

	// act
	byID, byIDErr := engine.GetBorrower(ctx, jdoe.BorrowerID)
	byUsername, byUsernameErr := engine.GetBorrowerByUsername(ctx, "jdoe")
	_, missingErr := engine.GetBorrowerByUsername(ctx, "nobody")
	borrowers, listErr := engine.ListBorrowers(ctx)

	// assert
	require.NoError(t, byIDErr)
	require.NoError(t, byUsernameErr)
	assert.Equal(t, shell.StorableBorrowerFrom(jdoe), byID)
	assert.Equal(t, byID, byUsername)
	assert.ErrorIs(t, missingErr, catalogstore.ErrNotFound)
	require.NoError(t, listErr)
	require.Len(t, borrowers, 2)
	assert.Equal(t, "alice", borrowers[0].Username)
}

func Test_Catalog_CreateBorrower_ShouldFail_WithDuplicateUsername(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// arrange
	GivenBorrower(t, ctx, engine, "jdoe")
	duplicate, err := core.BuildBorrower(GivenUniqueID(t), "jdoe", "")
	require.NoError(t, err)

	// act
	createErr := engine.CreateBorrower(ctx, shell.StorableBorrowerFrom(duplicate))

	// assert
	assert.ErrorIs(t, createErr, catalogstore.ErrWritingFailed)
}
