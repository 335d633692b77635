package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine/internal/adapters"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"

	tableGenres      = "genres"
	tableLanguages   = "languages"
	tableAuthors     = "authors"
	tableBooks       = "books"
	tableBookAuthors = "book_authors"
	tableBorrowers   = "borrowers"
	tableBookCopies  = "book_copies"
	tableQuestions   = "questions"
	tableChoices     = "choices"

	logMsgBuildQueryFailed     = "failed to build query"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database statement execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgIterateRowsFailed    = "failed to iterate database rows"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgConcurrencyConflict  = "concurrency conflict detected"
	logMsgOperationCompleted   = "operation completed"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "catalogstore operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrRowCount            = "row_count"
	logAttrDurationMS          = "duration_ms"
	logAttrExpectedVersion     = "expected_version"
	logAttrRecordID            = "record_id"
	logAttrConsistencyLevel    = "consistency_level"
	logAttrOperationName       = "operation"
	logAttrDialect             = "dialect"
	errorTypeBuildQuery        = "build_query"
	errorTypeDatabaseQuery     = "database_query"
	errorTypeDatabaseExec      = "database_exec"
	errorTypeRowScan           = "row_scan"
	errorTypeRowsAffected      = "rows_affected"
	errorTypeNotFound          = "not_found"
	errorTypeConcurrency       = "concurrency_conflict"
	errorTypeMigration         = "migration"
	operationMigrate           = "migrate"
	operationDropSchema        = "drop_schema"
	operationCreateBookCopy    = "create_book_copy"
	operationGetBookCopy       = "get_book_copy"
	operationUpdateBookCopy    = "update_book_copy"
	operationQueryBookCopies   = "query_book_copies"
	operationCountBookCopies   = "count_book_copies"
	operationCreateGenre       = "create_genre"
	operationListGenres        = "list_genres"
	operationCreateLanguage    = "create_language"
	operationListLanguages     = "list_languages"
	operationCreateAuthor      = "create_author"
	operationGetAuthor         = "get_author"
	operationListAuthors       = "list_authors"
	operationCreateBook        = "create_book"
	operationGetBook           = "get_book"
	operationListBooks         = "list_books"
	operationBooksByAuthor     = "query_books_by_author"
	operationCreateBorrower    = "create_borrower"
	operationGetBorrower       = "get_borrower"
	operationListBorrowers     = "list_borrowers"
	operationCount             = "count"
	operationCreateQuestion    = "create_question"
	operationCreateChoice      = "create_choice"
	operationGetQuestion       = "get_question"
	operationPublishedQuestion = "query_published_questions"
	operationIncrementVotes    = "increment_choice_votes"
)

// Engine is the relational catalog store. It renders SQL with goqu for its dialect
// and runs it through the configured database adapter.
type Engine struct {
	db               adapters.DBAdapter
	dialectName      string
	dialect          goqu.DialectWrapper
	tablePrefix      string
	logger           catalogstore.Logger
	contextualLogger catalogstore.ContextualLogger
	metricsCollector catalogstore.MetricsCollector
	tracingCollector catalogstore.TracingCollector
}

// sqlRenderer is implemented by all goqu datasets.
type sqlRenderer interface {
	ToSQL() (string, []any, error)
}

// NewEngineFromPGXPool creates a new PostgreSQL Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalogstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), dialectPostgres, options...)
}

// NewEngineFromPGXPoolWithReplica creates a new PostgreSQL Engine with a primary pool and a replica pool.
// Reads with catalogstore.WithEventualConsistency go to the replica, everything else to the primary.
func NewEngineFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil || replica == nil {
		return nil, catalogstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapterWithReplica(db, replica), dialectPostgres, options...)
}

// NewEngineFromSQLDB creates a new PostgreSQL Engine using a sql.DB (e.g. opened with lib/pq).
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalogstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), dialectPostgres, options...)
}

// NewEngineFromSQLX creates a new PostgreSQL Engine using a sqlx.DB.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalogstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), dialectPostgres, options...)
}

// NewEngineFromSQLite creates a new SQLite Engine using a sql.DB opened with the modernc.org/sqlite driver.
func NewEngineFromSQLite(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalogstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), dialectSQLite, options...)
}

func newEngine(db adapters.DBAdapter, dialectName string, options ...Option) (*Engine, error) {
	e := &Engine{
		db:          db,
		dialectName: dialectName,
		dialect:     goqu.Dialect(dialectName),
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Dialect returns the SQL dialect the engine renders statements for.
func (e *Engine) Dialect() string {
	return e.dialectName
}

// table returns the prefixed table name.
func (e *Engine) table(name string) string {
	return e.tablePrefix + name
}

// column returns a table-qualified column identifier.
func (e *Engine) column(table string, column string) exp.IdentifierExpression {
	return goqu.T(e.table(table)).Col(column)
}

// toSQL renders a goqu dataset.
func (e *Engine) toSQL(ctx context.Context, op *operation, ds sqlRenderer) (string, error) {
	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		e.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperationName, op.name)
		op.finishError(errorTypeBuildQuery)

		return "", errors.Join(catalogstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// query runs a read statement and returns the rows, the caller must close them.
func (e *Engine) query(ctx context.Context, op *operation, sqlQuery string) (adapters.DBRows, error) {
	start := time.Now()
	rows, err := e.db.Query(ctx, sqlQuery)
	e.logQueryWithDuration(ctx, sqlQuery, op.name, time.Since(start))

	if err != nil {
		e.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		op.finishError(classifyDatabaseError(ctx, err, errorTypeDatabaseQuery))

		return nil, errors.Join(catalogstore.ErrQueryingFailed, err)
	}

	return rows, nil
}

// exec runs a write statement and returns the number of affected rows.
func (e *Engine) exec(ctx context.Context, op *operation, sqlQuery string) (int64, error) {
	start := time.Now()
	result, err := e.db.Exec(ctx, sqlQuery)
	e.logQueryWithDuration(ctx, sqlQuery, op.name, time.Since(start))

	if err != nil {
		e.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
		op.finishError(classifyDatabaseError(ctx, err, errorTypeDatabaseExec))

		return 0, errors.Join(catalogstore.ErrWritingFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		e.logError(ctx, logMsgRowsAffectedFailed, err)
		op.finishError(errorTypeRowsAffected)

		return 0, errors.Join(catalogstore.ErrGettingRowsAffectedFailed, err)
	}

	return rowsAffected, nil
}

// scanFailed logs, finishes the operation and wraps the scan error.
func (e *Engine) scanFailed(ctx context.Context, op *operation, err error) error {
	e.logError(ctx, logMsgScanRowFailed, err, logAttrOperationName, op.name)
	op.finishError(errorTypeRowScan)

	return errors.Join(catalogstore.ErrScanningDBRowFailed, err)
}

// rowsDone checks the iteration error after the last row.
func (e *Engine) rowsDone(ctx context.Context, op *operation, rows adapters.DBRows) error {
	if err := rows.Err(); err != nil {
		e.logError(ctx, logMsgIterateRowsFailed, err, logAttrOperationName, op.name)
		op.finishError(errorTypeRowScan)

		return errors.Join(catalogstore.ErrQueryingFailed, err)
	}

	return nil
}

// closeRows closes database rows and logs failures.
func (e *Engine) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		e.logWarn(ctx, logMsgCloseRowsFailed, err)
	}
}

// notFound finishes the operation for a missing record.
func (e *Engine) notFound(op *operation) error {
	op.finishError(errorTypeNotFound)

	return catalogstore.ErrNotFound
}

// count runs SELECT COUNT(*) against one table with an optional where clause.
func (e *Engine) count(ctx context.Context, op *operation, table string, where ...exp.Expression) (int, error) {
	stmt := e.dialect.From(e.table(table)).Select(goqu.COUNT(goqu.Star()))
	if len(where) > 0 {
		stmt = stmt.Where(where...)
	}

	sqlQuery, err := e.toSQL(ctx, op, stmt)
	if err != nil {
		return 0, err
	}

	rows, err := e.query(ctx, op, sqlQuery)
	if err != nil {
		return 0, err
	}
	defer e.closeRows(ctx, rows)

	var total int64
	if rows.Next() {
		if scanErr := rows.Scan(&total); scanErr != nil {
			return 0, e.scanFailed(ctx, op, scanErr)
		}
	}

	if err = e.rowsDone(ctx, op, rows); err != nil {
		return 0, err
	}

	op.finishSuccess(1)

	return int(total), nil
}

// CountBooks returns the number of catalog titles.
func (e *Engine) CountBooks(ctx context.Context) (int, error) {
	op, ctx := e.startOperation(ctx, operationCount, map[string]string{"table": tableBooks})
	return e.count(ctx, op, tableBooks)
}

// CountAuthors returns the number of authors.
func (e *Engine) CountAuthors(ctx context.Context) (int, error) {
	op, ctx := e.startOperation(ctx, operationCount, map[string]string{"table": tableAuthors})
	return e.count(ctx, op, tableAuthors)
}

// CountGenres returns the number of genres.
func (e *Engine) CountGenres(ctx context.Context) (int, error) {
	op, ctx := e.startOperation(ctx, operationCount, map[string]string{"table": tableGenres})
	return e.count(ctx, op, tableGenres)
}

// CountLanguages returns the number of languages.
func (e *Engine) CountLanguages(ctx context.Context) (int, error) {
	op, ctx := e.startOperation(ctx, operationCount, map[string]string{"table": tableLanguages})
	return e.count(ctx, op, tableLanguages)
}
