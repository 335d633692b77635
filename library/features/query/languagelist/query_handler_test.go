package languagelist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/languagelist"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ListsLanguages_WithoutLogin(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	handler := languagelist.NewQueryHandler(engine)

	// arrange
	GivenCatalog(t, ctx, engine)

	// act
	languages, err := handler.Handle(ctx, languagelist.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []core.Language{{LanguageID: "en", Name: "English"}}, languages)
}
