package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/qw-league/internal/domain/importqueue"
	qb "github.com/riskibarqy/qw-league/internal/platform/querybuilder"
)

type queueSlotModel struct {
	Slot int    `db:"slot"`
	URL  string `db:"url"`
}

// QueueRepository keeps the staging queue as one row per slot.
type QueueRepository struct {
	db       *sqlx.DB
	capacity int
}

func NewQueueRepository(db *sqlx.DB, capacity int) *QueueRepository {
	if capacity <= 0 {
		capacity = importqueue.DefaultCapacity
	}
	return &QueueRepository{db: db, capacity: capacity}
}

func (r *QueueRepository) Load(ctx context.Context) (importqueue.Queue, error) {
	return r.load(ctx, r.db)
}

// Enqueue locks the queue table so two intakes cannot claim the same slots.
func (r *QueueRepository) Enqueue(ctx context.Context, urls []string) ([]importqueue.Slot, error) {
	var written []importqueue.Slot
	err := inTx(ctx, r.db, "enqueue urls", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE import_queue IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock import queue: %w", err)
		}

		queue, err := r.load(ctx, tx)
		if err != nil {
			return err
		}
		written, err = queue.Enqueue(urls)
		if err != nil || len(written) == 0 {
			return err
		}

		models := make([]queueSlotModel, 0, len(written))
		for _, slot := range written {
			models = append(models, queueSlotModel{Slot: slot.Index, URL: slot.URL})
		}
		return execBuilt(ctx, tx, "write queue slots", func() (string, []any, error) {
			return qb.InsertModels("import_queue", models,
				`ON CONFLICT (slot) DO UPDATE SET url = EXCLUDED.url, updated_at = NOW()`)
		})
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

// Consume clears the slot only while it still holds the same URL.
func (r *QueueRepository) Consume(ctx context.Context, slot importqueue.Slot) error {
	query, args, err := qb.Update("import_queue").
		Set("url", "").
		Where(qb.Eq("slot", slot.Index), qb.Eq("url", slot.URL)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build consume queue slot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("consume queue slot %d: %w", slot.Index, err)
	}
	return nil
}

func (r *QueueRepository) load(ctx context.Context, q sqlx.QueryerContext) (importqueue.Queue, error) {
	query, args, err := qb.Select("slot", "url").
		From("import_queue").
		Where(qb.Expr("slot < ?", r.capacity)).
		OrderBy("slot").
		ToSQL()
	if err != nil {
		return importqueue.Queue{}, fmt.Errorf("build load import queue query: %w", err)
	}

	var rows []queueSlotModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return importqueue.Queue{}, fmt.Errorf("load import queue: %w", err)
	}

	values := make([]string, r.capacity)
	for _, row := range rows {
		values[row.Slot] = row.URL
	}
	return importqueue.FromSlots(values, r.capacity), nil
}
