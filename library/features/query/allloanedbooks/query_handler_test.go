package allloanedbooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/allloanedbooks"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ListsAllLoans_WithUsernames(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	handler := allloanedbooks.NewQueryHandler(engine)

	// arrange
	GivenCatalog(t, ctx, engine)
	librarian := GivenBorrower(t, ctx, engine, "librarian")
	jdoe := GivenBorrower(t, ctx, engine, "jdoe")
	jane := GivenBorrower(t, ctx, engine, "jane")
	janesCopy := GivenBookCopy(t, ctx, engine, FixtureISBN, LentTo(jane.BorrowerID, FixtureClock()))
	jdoesCopy := GivenBookCopy(t, ctx, engine, FixtureISBN, LentTo(jdoe.BorrowerID, FixtureClock().AddDate(0, 0, 1)))
	GivenBookCopy(t, ctx, engine, FixtureISBN, WithStatus(core.Reserved))

	// act
	result, err := handler.Handle(LibrarianContext(ctx, librarian), allloanedbooks.BuildQuery(1, FixtureClock()))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Loans, 2)
	assert.Equal(t, janesCopy.CopyID, result.Loans[0].CopyID)
	assert.Equal(t, "jane", result.Loans[0].BorrowerUsername)
	assert.Equal(t, jdoesCopy.CopyID, result.Loans[1].CopyID)
	assert.Equal(t, "jdoe", result.Loans[1].BorrowerUsername)
	assert.Equal(t, uint(allloanedbooks.PageSize), result.Page.Size)
}

func Test_QueryHandler_Handle_Denied_ForMembers(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	handler := allloanedbooks.NewQueryHandler(engine)

	// arrange
	member := GivenBorrower(t, ctx, engine, "jdoe")

	// act
	_, err := handler.Handle(MemberContext(ctx, member), allloanedbooks.BuildQuery(1, FixtureClock()))

	// assert
	assert.ErrorIs(t, err, shell.ErrPermissionDenied)
}
