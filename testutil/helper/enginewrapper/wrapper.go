// Package enginewrapper creates store engines for tests, one per database adapter.
//
// The adapter is chosen with the ADAPTER_TYPE environment variable:
// "sqlite" (default, in-memory), "pgxpool", "sqldb" (lib/pq) or "sqlx".
// The PostgreSQL adapters need LIBRARIAN_TEST_POSTGRES_DSN, tests are skipped without it.
package enginewrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell/config"
)

const (
	typeSQLite  = "sqlite"
	typePGXPool = "pgxpool"
	typeSQLDB   = "sqldb"
	typeSQLX    = "sqlx"

	envAdapterType = "ADAPTER_TYPE"
	envPostgresDSN = "LIBRARIAN_TEST_POSTGRES_DSN"
)

// Wrapper abstracts over the different connection types behind an engine.
type Wrapper interface {
	GetEngine() *sqlengine.Engine
	Close()
}

type sqlDBWrapper struct {
	db     *sql.DB
	engine *sqlengine.Engine
}

func (w *sqlDBWrapper) GetEngine() *sqlengine.Engine { return w.engine }
func (w *sqlDBWrapper) Close()                       { _ = w.db.Close() }

type sqlxWrapper struct {
	db     *sqlx.DB
	engine *sqlengine.Engine
}

func (w *sqlxWrapper) GetEngine() *sqlengine.Engine { return w.engine }
func (w *sqlxWrapper) Close()                       { _ = w.db.Close() }

type pgxPoolWrapper struct {
	pool   *pgxpool.Pool
	engine *sqlengine.Engine
}

func (w *pgxPoolWrapper) GetEngine() *sqlengine.Engine { return w.engine }
func (w *pgxPoolWrapper) Close()                       { w.pool.Close() }

// CreateWrapper opens the database selected by ADAPTER_TYPE, migrates a fresh schema,
// and registers the cleanup with t. PostgreSQL runs use a table prefix per test.
func CreateWrapper(t testing.TB, options ...sqlengine.Option) Wrapper {
	t.Helper()

	ctx := context.Background()
	adapterType := strings.ToLower(os.Getenv(envAdapterType))

	var wrapper Wrapper

	switch adapterType {
	case typeSQLite, "":
		db, err := config.OpenSQLite(ctx, ":memory:")
		require.NoError(t, err, "error opening sqlite in test setup")
		engine, err := sqlengine.NewEngineFromSQLite(db, options...)
		require.NoError(t, err, "error creating engine in test setup")
		wrapper = &sqlDBWrapper{db: db, engine: engine}

	case typePGXPool:
		pool, err := config.OpenPGXPool(ctx, postgresDSN(t))
		require.NoError(t, err, "error connecting to DB pool in test setup")
		engine, err := sqlengine.NewEngineFromPGXPool(pool, withTestPrefix(t, options)...)
		require.NoError(t, err, "error creating engine in test setup")
		wrapper = &pgxPoolWrapper{pool: pool, engine: engine}

	case typeSQLDB:
		db, err := config.OpenPostgresSQLDB(ctx, postgresDSN(t))
		require.NoError(t, err, "error connecting to DB in test setup")
		engine, err := sqlengine.NewEngineFromSQLDB(db, withTestPrefix(t, options)...)
		require.NoError(t, err, "error creating engine in test setup")
		wrapper = &sqlDBWrapper{db: db, engine: engine}

	case typeSQLX:
		db, err := config.OpenPostgresSQLX(ctx, postgresDSN(t))
		require.NoError(t, err, "error connecting to DB in test setup")
		engine, err := sqlengine.NewEngineFromSQLX(db, withTestPrefix(t, options)...)
		require.NoError(t, err, "error creating engine in test setup")
		wrapper = &sqlxWrapper{db: db, engine: engine}

	default:
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterType))
	}

	t.Cleanup(wrapper.Close)

	if adapterType != typeSQLite && adapterType != "" {
		require.NoError(t, wrapper.GetEngine().DropSchema(ctx), "error cleaning up the schema in test setup")
	}

	require.NoError(t, wrapper.GetEngine().Migrate(ctx), "error migrating the schema in test setup")

	return wrapper
}

func postgresDSN(t testing.TB) string {
	dsn := os.Getenv(envPostgresDSN)
	if dsn == "" {
		t.Skipf("%s is not set", envPostgresDSN)
	}

	return dsn
}

// withTestPrefix isolates the tables of one test in a shared PostgreSQL database.
func withTestPrefix(t testing.TB, options []sqlengine.Option) []sqlengine.Option {
	var b strings.Builder
	for _, r := range strings.ToLower(t.Name()) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	prefix := b.String()
	if len(prefix) > 30 {
		prefix = prefix[len(prefix)-30:]
	}

	return append([]sqlengine.Option{sqlengine.WithTablePrefix("t" + prefix + "_")}, options...)
}
