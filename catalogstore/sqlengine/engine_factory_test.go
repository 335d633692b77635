package sqlengine_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell/config"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper"               //nolint:revive
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper/enginewrapper" //nolint:revive
)

func Test_FactoryFunctions_ShouldFail_WithNilDatabaseConnection(t *testing.T) {
	testCases := []struct {
		name    string
		factory func() (*sqlengine.Engine, error)
	}{
		{
			name:    "pgx pool",
			factory: func() (*sqlengine.Engine, error) { return sqlengine.NewEngineFromPGXPool(nil) },
		},
		{
			name: "pgx pool with nil replica",
			factory: func() (*sqlengine.Engine, error) {
				return sqlengine.NewEngineFromPGXPoolWithReplica(&pgxpool.Pool{}, nil)
			},
		},
		{
			name:    "sql.DB",
			factory: func() (*sqlengine.Engine, error) { return sqlengine.NewEngineFromSQLDB((*sql.DB)(nil)) },
		},
		{
			name:    "sqlx.DB",
			factory: func() (*sqlengine.Engine, error) { return sqlengine.NewEngineFromSQLX((*sqlx.DB)(nil)) },
		},
		{
			name:    "sqlite",
			factory: func() (*sqlengine.Engine, error) { return sqlengine.NewEngineFromSQLite(nil) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			engine, err := tc.factory()

			// assert
			assert.ErrorIs(t, err, catalogstore.ErrNilDatabaseConnection)
			assert.Nil(t, engine)
		})
	}
}

func Test_FactoryFunctions_WithTablePrefix_ShouldFail_WithInvalidPrefix(t *testing.T) {
	// arrange
	db, err := config.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, prefix := range []string{"Catalog_", "catalog-", "catalog; drop", "cat.alog"} {
		// act
		engine, factoryErr := sqlengine.NewEngineFromSQLite(db, sqlengine.WithTablePrefix(prefix))

		// assert
		assert.ErrorIs(t, factoryErr, catalogstore.ErrInvalidTablePrefix, "prefix %q", prefix)
		assert.Nil(t, engine)
	}
}

func Test_FactoryFunctions_WithTablePrefix_PrefixesAllTables(t *testing.T) {
	// arrange
	db, err := config.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// act
	engine, err := sqlengine.NewEngineFromSQLite(db, sqlengine.WithTablePrefix("catalog_"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", engine.Dialect())

	statements := engine.SchemaStatements()
	require.NotEmpty(t, statements)
	for _, statement := range statements {
		assert.NotContains(t, statement, "{p}")
	}
	assert.Contains(t, statements[0], "catalog_genres")
}

func Test_FactoryFunctions_CreateWrapper_ShouldPanic_WithUnsupportedAdapterType(t *testing.T) {
	t.Setenv("ADAPTER_TYPE", "unsupported")

	assert.Panics(t, func() {
		CreateWrapper(t)
	})
}

func Test_Migrate_IsRepeatable_AndDropSchema_RemovesTables(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)

	// arrange
	GivenCatalog(t, ctx, engine)

	// act
	migrateErr := engine.Migrate(ctx)
	countAfterMigrate, countErr := engine.CountBooks(ctx)
	dropErr := engine.DropSchema(ctx)
	_, countAfterDropErr := engine.CountBooks(ctx)

	// assert
	assert.NoError(t, migrateErr)
	assert.NoError(t, countErr)
	assert.Equal(t, 1, countAfterMigrate, "a second migration must keep existing rows")
	assert.NoError(t, dropErr)
	assert.ErrorIs(t, countAfterDropErr, catalogstore.ErrQueryingFailed)
}
