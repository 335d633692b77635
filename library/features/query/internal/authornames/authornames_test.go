package authornames_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/internal/authornames"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

type countingStore struct {
	authornames.Store
	calls int
}

func (s *countingStore) GetAuthor(ctx context.Context, authorID string) (catalogstore.StorableAuthor, error) {
	s.calls++
	return s.Store.GetAuthor(ctx, authorID)
}

func Test_Resolver_KeepsOrder_CachesAuthors_AndSkipsMissing(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	store := &countingStore{Store: engine}
	resolver := authornames.NewResolver(store)

	// arrange
	_, author := GivenCatalog(t, ctx, engine)
	missingID := GivenUniqueID(t).String()

	// act
	authors, err := resolver.Resolve(ctx, []string{missingID, author.AuthorID})
	require.NoError(t, err)
	again, err := resolver.Resolve(ctx, []string{author.AuthorID, missingID})
	require.NoError(t, err)

	// assert
	stored, err := engine.GetAuthor(ctx, author.AuthorID)
	require.NoError(t, err)
	assert.Equal(t, []core.Author{shell.AuthorFrom(stored)}, authors)
	assert.Equal(t, authors, again)
	assert.Equal(t, 2, store.calls)
}
