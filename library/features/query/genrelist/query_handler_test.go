package genrelist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/genrelist"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ListsGenresByName_WithoutLogin(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	handler := genrelist.NewQueryHandler(engine)

	// arrange
	GivenCatalog(t, ctx, engine)
	fantasy, err := core.BuildGenre("fantasy", "Fantasy")
	require.NoError(t, err)
	require.NoError(t, engine.CreateGenre(ctx, shell.StorableGenreFrom(fantasy)))

	// act
	genres, err := handler.Handle(ctx, genrelist.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []core.Genre{fantasy, {GenreID: "tech", Name: "Technology"}}, genres)
}
