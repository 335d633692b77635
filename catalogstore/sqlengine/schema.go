package sqlengine

import (
	"context"
	"errors"
	"strings"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
)

// {p} is replaced with the table prefix.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS {p}genres (
		genre_id TEXT PRIMARY KEY,
		name VARCHAR(200) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {p}languages (
		language_id TEXT PRIMARY KEY,
		name VARCHAR(200) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {p}authors (
		author_id UUID PRIMARY KEY,
		prefix VARCHAR(4) NOT NULL DEFAULT '',
		first_name VARCHAR(20) NOT NULL,
		last_name VARCHAR(30) NOT NULL,
		suffix VARCHAR(5) NOT NULL DEFAULT '',
		name VARCHAR(69) NOT NULL,
		birth_date DATE NULL,
		death_date DATE NULL
	)`,
	`CREATE INDEX IF NOT EXISTS {p}authors_name_idx ON {p}authors (last_name, first_name)`,
	`CREATE TABLE IF NOT EXISTS {p}books (
		isbn VARCHAR(13) PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		summary VARCHAR(1000) NOT NULL DEFAULT '',
		pub_date DATE NULL,
		genre_id TEXT NULL,
		language_id TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {p}book_authors (
		isbn VARCHAR(13) NOT NULL,
		author_id UUID NOT NULL,
		author_order INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (isbn, author_id)
	)`,
	`CREATE TABLE IF NOT EXISTS {p}borrowers (
		borrower_id UUID PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		display_name VARCHAR(200) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS {p}book_copies (
		copy_id UUID PRIMARY KEY,
		isbn VARCHAR(13) NOT NULL,
		imprint VARCHAR(200) NOT NULL DEFAULT '',
		status CHAR(1) NOT NULL DEFAULT 'm',
		loaned_on TIMESTAMPTZ NULL,
		due_back TIMESTAMPTZ NULL,
		borrower_id UUID NULL,
		version BIGINT NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS {p}book_copies_status_due_idx ON {p}book_copies (status, due_back)`,
	`CREATE INDEX IF NOT EXISTS {p}book_copies_borrower_idx ON {p}book_copies (borrower_id)`,
	`CREATE INDEX IF NOT EXISTS {p}book_copies_isbn_idx ON {p}book_copies (isbn)`,
	`CREATE TABLE IF NOT EXISTS {p}questions (
		question_id UUID PRIMARY KEY,
		question_text VARCHAR(200) NOT NULL,
		pub_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS {p}questions_pub_date_idx ON {p}questions (pub_date)`,
	`CREATE TABLE IF NOT EXISTS {p}choices (
		choice_id UUID PRIMARY KEY,
		question_id UUID NOT NULL,
		choice_text VARCHAR(200) NOT NULL,
		votes INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS {p}choices_question_idx ON {p}choices (question_id)`,
}

// SQLite has no native timestamp type, timestamps are stored as fixed-width UTC text.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS {p}genres (
		genre_id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {p}languages (
		language_id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {p}authors (
		author_id TEXT PRIMARY KEY,
		prefix TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		suffix TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		birth_date TEXT NULL,
		death_date TEXT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS {p}authors_name_idx ON {p}authors (last_name, first_name)`,
	`CREATE TABLE IF NOT EXISTS {p}books (
		isbn TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		pub_date TEXT NULL,
		genre_id TEXT NULL,
		language_id TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {p}book_authors (
		isbn TEXT NOT NULL,
		author_id TEXT NOT NULL,
		author_order INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (isbn, author_id)
	)`,
	`CREATE TABLE IF NOT EXISTS {p}borrowers (
		borrower_id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS {p}book_copies (
		copy_id TEXT PRIMARY KEY,
		isbn TEXT NOT NULL,
		imprint TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'm',
		loaned_on TEXT NULL,
		due_back TEXT NULL,
		borrower_id TEXT NULL,
		version INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS {p}book_copies_status_due_idx ON {p}book_copies (status, due_back)`,
	`CREATE INDEX IF NOT EXISTS {p}book_copies_borrower_idx ON {p}book_copies (borrower_id)`,
	`CREATE INDEX IF NOT EXISTS {p}book_copies_isbn_idx ON {p}book_copies (isbn)`,
	`CREATE TABLE IF NOT EXISTS {p}questions (
		question_id TEXT PRIMARY KEY,
		question_text TEXT NOT NULL,
		pub_date TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS {p}questions_pub_date_idx ON {p}questions (pub_date)`,
	`CREATE TABLE IF NOT EXISTS {p}choices (
		choice_id TEXT PRIMARY KEY,
		question_id TEXT NOT NULL,
		choice_text TEXT NOT NULL,
		votes INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS {p}choices_question_idx ON {p}choices (question_id)`,
}

// SchemaStatements returns the DDL the engine runs in Migrate, with the table prefix applied.
func (e *Engine) SchemaStatements() []string {
	source := postgresSchema
	if e.dialectName == dialectSQLite {
		source = sqliteSchema
	}

	statements := make([]string, 0, len(source))
	for _, statement := range source {
		statements = append(statements, strings.ReplaceAll(statement, "{p}", e.tablePrefix))
	}

	return statements
}

// Migrate creates all tables and indexes if they don't exist yet.
func (e *Engine) Migrate(ctx context.Context) error {
	op, ctx := e.startOperation(ctx, operationMigrate, nil)

	statements := e.SchemaStatements()
	for _, statement := range statements {
		if _, err := e.db.Exec(ctx, statement); err != nil {
			e.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, statement)
			op.finishError(classifyDatabaseError(ctx, err, errorTypeMigration))

			return errors.Join(catalogstore.ErrMigrationFailed, err)
		}
	}

	op.finishSuccess(len(statements))

	return nil
}

// DropSchema drops all tables of the engine's prefix. Indexes go with their tables.
func (e *Engine) DropSchema(ctx context.Context) error {
	op, ctx := e.startOperation(ctx, operationDropSchema, nil)

	tables := []string{
		tableChoices,
		tableQuestions,
		tableBookCopies,
		tableBorrowers,
		tableBookAuthors,
		tableBooks,
		tableAuthors,
		tableLanguages,
		tableGenres,
	}

	for _, table := range tables {
		statement := "DROP TABLE IF EXISTS " + e.table(table)
		if _, err := e.db.Exec(ctx, statement); err != nil {
			e.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, statement)
			op.finishError(classifyDatabaseError(ctx, err, errorTypeMigration))

			return errors.Join(catalogstore.ErrMigrationFailed, err)
		}
	}

	op.finishSuccess(len(tables))

	return nil
}
