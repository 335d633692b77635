// Package sqlengine provides the relational implementation of the catalog store.
//
// The engine renders every statement with goqu, for PostgreSQL or SQLite, and executes it
// through one of the supported database libraries (pgx, sql.DB, sqlx, modernc sqlite).
//
// Key features:
//   - Multiple database adapter support (PGX with optional read replica, SQL, SQLX, SQLite)
//   - Optimistic concurrency for book copies via a version column
//   - Atomic vote increments for poll choices
//   - Configurable table prefix
//   - Optional logging, contextual logging, metrics and tracing
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	engine, _ := sqlengine.NewEngineFromPGXPool(db)
//	_ = engine.Migrate(ctx)
//
//	// With operational logging and a table prefix
//	engine, _ := sqlengine.NewEngineFromPGXPool(
//		db,
//		sqlengine.WithTablePrefix("catalog_"),
//		sqlengine.WithLogger(slog.Default()),
//	)
//
//	// Embedded SQLite, e.g. for local use and tests
//	sqliteDB, _ := sql.Open("sqlite", "file:library.db")
//	engine, _ := sqlengine.NewEngineFromSQLite(sqliteDB)
//
//	bookCopy, version, _ := engine.GetBookCopy(ctx, copyID)
//	err := engine.UpdateBookCopy(ctx, changedCopy, version)
package sqlengine
