// Package adapters hides the differences between the supported database libraries
// behind one DBAdapter interface: pgxpool.Pool, sql.DB (lib/pq or modernc sqlite) and sqlx.DB.
//
// All statements arrive fully rendered by the SQL builder, so the adapters only
// execute them and wrap the results.
package adapters
