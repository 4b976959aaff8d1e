package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/qw-league/internal/domain/importqueue"
)

type QueueRepository struct {
	mu    sync.Mutex
	queue importqueue.Queue
}

func NewQueueRepository(capacity int) *QueueRepository {
	return &QueueRepository{queue: importqueue.New(capacity)}
}

func (r *QueueRepository) Load(_ context.Context) (importqueue.Queue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return importqueue.FromSlots(r.queue.Slots(), r.queue.Capacity()), nil
}

func (r *QueueRepository) Enqueue(_ context.Context, urls []string) ([]importqueue.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.queue.Enqueue(urls)
}

func (r *QueueRepository) Consume(_ context.Context, slot importqueue.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queue.Consume(slot)
	return nil
}
