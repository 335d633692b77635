// Package config loads the librarian configuration and opens database connections for it.
//
// The configuration is a YAML file, the database driver and DSN can be overridden
// with the LIBRARIAN_DATABASE_DRIVER and LIBRARIAN_DATABASE_DSN environment variables.
// Connections are opened with pgx (pgxpool), lib/pq (sql.DB), sqlx or the pure Go sqlite driver,
// each with the pool settings the catalog store is tuned for.
package config
