package sqlengine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine/internal/adapters"
)

var bookCopyColumns = []any{"copy_id", "isbn", "imprint", "status", "loaned_on", "due_back", "borrower_id", "version"}

// CreateBookCopy inserts a new book copy with version 1.
func (e *Engine) CreateBookCopy(ctx context.Context, bookCopy catalogstore.StorableBookCopy) error {
	op, ctx := e.startOperation(ctx, operationCreateBookCopy, map[string]string{logAttrRecordID: bookCopy.CopyID})

	record := bookCopyRecord(bookCopy)
	record["copy_id"] = bookCopy.CopyID
	record["version"] = 1

	sqlQuery, err := e.toSQL(ctx, op, e.dialect.Insert(e.table(tableBookCopies)).Rows(record))
	if err != nil {
		return err
	}

	rowsAffected, err := e.exec(ctx, op, sqlQuery)
	if err != nil {
		return err
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// GetBookCopy returns the copy with the given id and its current version.
func (e *Engine) GetBookCopy(
	ctx context.Context,
	copyID string,
) (catalogstore.StorableBookCopy, catalogstore.VersionUint, error) {

	op, ctx := e.startOperation(ctx, operationGetBookCopy, map[string]string{logAttrRecordID: copyID})

	stmt := e.dialect.From(e.table(tableBookCopies)).
		Select(bookCopyColumns...).
		Where(goqu.C("copy_id").Eq(copyID))

	sqlQuery, err := e.toSQL(ctx, op, stmt)
	if err != nil {
		return catalogstore.StorableBookCopy{}, 0, err
	}

	rows, err := e.query(ctx, op, sqlQuery)
	if err != nil {
		return catalogstore.StorableBookCopy{}, 0, err
	}
	defer e.closeRows(ctx, rows)

	if !rows.Next() {
		if err = e.rowsDone(ctx, op, rows); err != nil {
			return catalogstore.StorableBookCopy{}, 0, err
		}

		return catalogstore.StorableBookCopy{}, 0, e.notFound(op)
	}

	bookCopy, version, err := scanBookCopy(rows)
	if err != nil {
		return catalogstore.StorableBookCopy{}, 0, e.scanFailed(ctx, op, err)
	}

	op.finishSuccess(1)

	return bookCopy, version, nil
}

// UpdateBookCopy overwrites the mutable fields of a copy, but only if its stored version
// still equals expectedVersion. It fails with catalogstore.ErrConcurrencyConflict otherwise,
// which also covers copies that don't exist.
func (e *Engine) UpdateBookCopy(
	ctx context.Context,
	bookCopy catalogstore.StorableBookCopy,
	expectedVersion catalogstore.VersionUint,
) error {

	op, ctx := e.startOperation(ctx, operationUpdateBookCopy, map[string]string{
		logAttrRecordID:        bookCopy.CopyID,
		logAttrExpectedVersion: fmt.Sprintf("%d", expectedVersion),
	})

	record := bookCopyRecord(bookCopy)
	record["version"] = goqu.L("version + 1")

	stmt := e.dialect.Update(e.table(tableBookCopies)).
		Set(record).
		Where(
			goqu.C("copy_id").Eq(bookCopy.CopyID),
			goqu.C("version").Eq(expectedVersion),
		)

	sqlQuery, err := e.toSQL(ctx, op, stmt)
	if err != nil {
		return err
	}

	rowsAffected, err := e.exec(ctx, op, sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected < 1 {
		e.logOperation(ctx, logMsgConcurrencyConflict,
			logAttrRecordID, bookCopy.CopyID,
			logAttrExpectedVersion, expectedVersion,
		)
		op.finishConflict()

		return catalogstore.ErrConcurrencyConflict
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// QueryBookCopies returns the copies matching the filter, ordered by due date with undated copies last.
func (e *Engine) QueryBookCopies(
	ctx context.Context,
	filter catalogstore.BookCopyFilter,
	page catalogstore.Page,
) ([]catalogstore.StorableBookCopy, error) {

	op, ctx := e.startOperation(ctx, operationQueryBookCopies, filterAttrs(filter))

	stmt := e.dialect.From(e.table(tableBookCopies)).
		Select(bookCopyColumns...).
		Where(bookCopyFilterExpressions(filter)...).
		Order(
			goqu.L("CASE WHEN due_back IS NULL THEN 1 ELSE 0 END").Asc(),
			goqu.C("due_back").Asc(),
			goqu.C("copy_id").Asc(),
		)
	stmt = withPage(stmt, page)

	sqlQuery, err := e.toSQL(ctx, op, stmt)
	if err != nil {
		return nil, err
	}

	rows, err := e.query(ctx, op, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer e.closeRows(ctx, rows)

	bookCopies := make([]catalogstore.StorableBookCopy, 0)
	for rows.Next() {
		bookCopy, _, scanErr := scanBookCopy(rows)
		if scanErr != nil {
			return nil, e.scanFailed(ctx, op, scanErr)
		}

		bookCopies = append(bookCopies, bookCopy)
	}

	if err = e.rowsDone(ctx, op, rows); err != nil {
		return nil, err
	}

	op.finishSuccess(len(bookCopies))

	return bookCopies, nil
}

// CountBookCopies returns the number of copies matching the filter.
func (e *Engine) CountBookCopies(ctx context.Context, filter catalogstore.BookCopyFilter) (int, error) {
	op, ctx := e.startOperation(ctx, operationCountBookCopies, filterAttrs(filter))

	return e.count(ctx, op, tableBookCopies, bookCopyFilterExpressions(filter)...)
}

func bookCopyRecord(bookCopy catalogstore.StorableBookCopy) goqu.Record {
	var borrowerID any
	if bookCopy.BorrowerID != "" {
		borrowerID = bookCopy.BorrowerID
	}

	return goqu.Record{
		"isbn":        bookCopy.ISBN,
		"imprint":     bookCopy.Imprint,
		"status":      bookCopy.Status,
		"loaned_on":   formatTimestamp(bookCopy.LoanedOn),
		"due_back":    formatTimestamp(bookCopy.DueBack),
		"borrower_id": borrowerID,
	}
}

func bookCopyFilterExpressions(filter catalogstore.BookCopyFilter) []exp.Expression {
	where := make([]exp.Expression, 0, 4)

	if filter.Status != "" {
		where = append(where, goqu.C("status").Eq(filter.Status))
	}

	if filter.BorrowerID != "" {
		where = append(where, goqu.C("borrower_id").Eq(filter.BorrowerID))
	}

	if filter.ISBN != "" {
		where = append(where, goqu.C("isbn").Eq(filter.ISBN))
	}

	if !filter.DueBefore.IsZero() {
		where = append(where, goqu.C("due_back").Lt(formatTimestamp(filter.DueBefore)))
	}

	return where
}

func filterAttrs(filter catalogstore.BookCopyFilter) map[string]string {
	attrs := map[string]string{}

	if filter.Status != "" {
		attrs["filter.status"] = filter.Status
	}

	if filter.BorrowerID != "" {
		attrs["filter.borrower_id"] = filter.BorrowerID
	}

	if filter.ISBN != "" {
		attrs["filter.isbn"] = filter.ISBN
	}

	return attrs
}

func withPage(stmt *goqu.SelectDataset, page catalogstore.Page) *goqu.SelectDataset {
	if page.Limit == 0 {
		return stmt
	}

	return stmt.Limit(page.Limit).Offset(page.Offset)
}

func scanBookCopy(rows adapters.DBRows) (catalogstore.StorableBookCopy, catalogstore.VersionUint, error) {
	var (
		bookCopy   catalogstore.StorableBookCopy
		loanedOn   nullTimestamp
		dueBack    nullTimestamp
		borrowerID sql.NullString
		version    int64
	)

	err := rows.Scan(
		&bookCopy.CopyID,
		&bookCopy.ISBN,
		&bookCopy.Imprint,
		&bookCopy.Status,
		&loanedOn,
		&dueBack,
		&borrowerID,
		&version,
	)
	if err != nil {
		return catalogstore.StorableBookCopy{}, 0, err
	}

	bookCopy.LoanedOn = loanedOn.Time
	bookCopy.DueBack = dueBack.Time
	bookCopy.BorrowerID = borrowerID.String

	return bookCopy, catalogstore.VersionUint(version), nil
}
