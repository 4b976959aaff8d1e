package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	qb "github.com/riskibarqy/qw-league/internal/platform/querybuilder"
)

// maxBindParams is the postgres limit of bind parameters per statement.
const maxBindParams = 65535

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// inTx runs fn in a transaction and commits when fn returns nil.
func inTx(ctx context.Context, db *sqlx.DB, name string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx %s: %w", name, err)
	}
	return nil
}

// execBuilt runs a statement rendered by the query builder.
func execBuilt(ctx context.Context, tx *sqlx.Tx, what string, build func() (string, []any, error)) error {
	query, args, err := build()
	if err != nil {
		return fmt.Errorf("build %s query: %w", what, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// clearTable deletes every row matching conditions.
func clearTable(ctx context.Context, tx *sqlx.Tx, table string, conditions ...qb.Condition) error {
	return execBuilt(ctx, tx, "clear "+table, qb.DeleteFrom(table).Where(conditions...).ToSQL)
}

// insertChunked writes models with multi-row inserts that stay under the
// bind parameter limit.
func insertChunked[T any](ctx context.Context, tx *sqlx.Tx, table string, models []T) error {
	if len(models) == 0 {
		return nil
	}
	cols := len(qb.Columns[T]())
	if cols == 0 {
		return fmt.Errorf("model for %s has no db columns", table)
	}

	size := maxBindParams / cols
	for start := 0; start < len(models); start += size {
		end := min(start+size, len(models))
		chunk := models[start:end]
		err := execBuilt(ctx, tx, "insert "+table, func() (string, []any, error) {
			return qb.InsertModels(table, chunk, "")
		})
		if err != nil {
			return err
		}
	}
	return nil
}
