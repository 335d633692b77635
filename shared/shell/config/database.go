package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine"
)

const (
	defaultMaxConnections    = int32(8)
	defaultMinConnections    = int32(2)
	defaultMaxOpenConns      = 50
	defaultMaxIdleConns      = 10
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = 5 * time.Minute
	defaultHealthCheckPeriod = time.Minute
	defaultConnectTimeout    = 5 * time.Second
)

// ErrOpeningDatabaseFailed is returned when a connection can't be opened or doesn't answer a ping.
var ErrOpeningDatabaseFailed = errors.New("opening the database failed")

// PGXPoolConfig parses the DSN and applies the pool settings.
func PGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// OpenPGXPool opens and pings a pgx pool.
func OpenPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	dbConfig, err := PGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return pool, nil
}

// OpenPostgresSQLDB opens and pings a lib/pq backed *sql.DB.
func OpenPostgresSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	configureSQLPool(db)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return db, nil
}

// OpenPostgresSQLX opens and pings a lib/pq backed *sqlx.DB.
func OpenPostgresSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	configureSQLPool(db.DB)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return db, nil
}

// OpenSQLite opens a sqlite database. It allows a single connection, so in-memory databases
// stay one database and writers never race for the lock.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return db, nil
}

func configureSQLPool(db *sql.DB) {
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}

// OpenEngine opens the configured database and creates a store engine for it.
// The returned function closes all connections.
func OpenEngine(ctx context.Context, cfg DatabaseConfig, options ...sqlengine.Option) (*sqlengine.Engine, func(), error) {
	if cfg.TablePrefix != "" {
		options = append([]sqlengine.Option{sqlengine.WithTablePrefix(cfg.TablePrefix)}, options...)
	}

	switch cfg.Driver {
	case DriverPGX:
		return openPGXEngine(ctx, cfg, options)

	case DriverPostgres:
		db, err := OpenPostgresSQLDB(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}

		return withCloser(sqlengine.NewEngineFromSQLDB(db, options...))(func() { _ = db.Close() })

	case DriverSQLX:
		db, err := OpenPostgresSQLX(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}

		return withCloser(sqlengine.NewEngineFromSQLX(db, options...))(func() { _ = db.Close() })

	case DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}

		return withCloser(sqlengine.NewEngineFromSQLite(db, options...))(func() { _ = db.Close() })

	default:
		return nil, nil, fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, cfg.Driver)
	}
}

func openPGXEngine(ctx context.Context, cfg DatabaseConfig, options []sqlengine.Option) (*sqlengine.Engine, func(), error) {
	pool, err := OpenPGXPool(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	if cfg.ReplicaDSN == "" {
		return withCloser(sqlengine.NewEngineFromPGXPool(pool, options...))(pool.Close)
	}

	replica, err := OpenPGXPool(ctx, cfg.ReplicaDSN)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	return withCloser(sqlengine.NewEngineFromPGXPoolWithReplica(pool, replica, options...))(func() {
		replica.Close()
		pool.Close()
	})
}

// withCloser closes the connection right away when the engine couldn't be created.
func withCloser(engine *sqlengine.Engine, err error) func(closeFn func()) (*sqlengine.Engine, func(), error) {
	return func(closeFn func()) (*sqlengine.Engine, func(), error) {
		if err != nil {
			closeFn()
			return nil, nil, err
		}

		return engine, closeFn, nil
	}
}
