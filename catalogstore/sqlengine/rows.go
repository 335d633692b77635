package sqlengine

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine/internal/adapters"
)

// selectAll renders and runs a select and scans every row.
// It does not finish the operation, so callers can run follow-up statements first.
func selectAll[T any](
	ctx context.Context,
	e *Engine,
	op *operation,
	stmt sqlRenderer,
	scan func(rows adapters.DBRows) (T, error),
) ([]T, error) {

	sqlQuery, err := e.toSQL(ctx, op, stmt)
	if err != nil {
		return nil, err
	}

	rows, err := e.query(ctx, op, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer e.closeRows(ctx, rows)

	result := make([]T, 0)
	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			return nil, e.scanFailed(ctx, op, scanErr)
		}

		result = append(result, item)
	}

	if err = e.rowsDone(ctx, op, rows); err != nil {
		return nil, err
	}

	return result, nil
}

// selectOne is selectAll for lookups by identifier, it fails with catalogstore.ErrNotFound for no rows.
func selectOne[T any](
	ctx context.Context,
	e *Engine,
	op *operation,
	stmt sqlRenderer,
	scan func(rows adapters.DBRows) (T, error),
) (T, error) {

	var zero T

	items, err := selectAll(ctx, e, op, stmt, scan)
	if err != nil {
		return zero, err
	}

	if len(items) == 0 {
		return zero, e.notFound(op)
	}

	return items[0], nil
}

// insert renders and runs an insert statement. It does not finish the operation.
func (e *Engine) insert(ctx context.Context, op *operation, stmt sqlRenderer) (int64, error) {
	sqlQuery, err := e.toSQL(ctx, op, stmt)
	if err != nil {
		return 0, err
	}

	return e.exec(ctx, op, sqlQuery)
}
