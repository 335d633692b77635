package authordetail_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/authordetail"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ShowsAuthor_WithBooks(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	handler := authordetail.NewQueryHandler(engine)

	// arrange
	book, author := GivenCatalog(t, ctx, engine)
	member := GivenBorrower(t, ctx, engine, "jdoe")

	// act
	result, err := handler.Handle(MemberContext(ctx, member), authordetail.BuildQuery(author.AuthorID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Vlad Khononov", result.Author.Display())
	require.Len(t, result.Books, 1)
	assert.Equal(t, book.ISBN, result.Books[0].ISBN)
}

func Test_QueryHandler_Handle_Error_ForUnknownAuthor(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	handler := authordetail.NewQueryHandler(engine)

	// arrange
	member := GivenBorrower(t, ctx, engine, "jdoe")

	// act
	_, err := handler.Handle(MemberContext(ctx, member), authordetail.BuildQuery(GivenUniqueID(t).String()))

	// assert
	assert.ErrorIs(t, err, catalogstore.ErrNotFound)
}
