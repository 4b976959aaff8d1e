package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	qb "github.com/riskibarqy/qw-league/internal/platform/querybuilder"
)

// LedgerRepository stores ledger rows and the imported URL record.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) ListRows(ctx context.Context) ([]gamerow.GameRow, error) {
	query, args, err := qb.Select(qb.Columns[gameRowModel]()...).
		From("game_rows").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game rows query: %w", err)
	}

	var rows []gameRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game rows: %w", err)
	}

	out := make([]gamerow.GameRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}

func (r *LedgerRepository) ListImportedURLs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("url").From("imported_urls").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list imported urls query: %w", err)
	}

	var urls []string
	if err := r.db.SelectContext(ctx, &urls, query, args...); err != nil {
		return nil, fmt.Errorf("list imported urls: %w", err)
	}
	return urls, nil
}

// AppendMap records the URL first so a concurrent duplicate fails on the
// unique index before any row is written.
func (r *LedgerRepository) AppendMap(ctx context.Context, url string, rows []gamerow.GameRow) error {
	return inTx(ctx, r.db, "append map", func(tx *sqlx.Tx) error {
		err := execBuilt(ctx, tx, "record imported url", func() (string, []any, error) {
			return qb.InsertModels("imported_urls", []importedURLModel{{URL: url}}, "")
		})
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("url already imported: %s", url)
			}
			return err
		}

		models := make([]gameRowModel, 0, len(rows))
		for _, row := range rows {
			models = append(models, gameRowFromDomain(row))
		}
		return insertChunked(ctx, tx, "game_rows", models)
	})
}
