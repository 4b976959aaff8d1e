package importqueue

import "context"

type Repository interface {
	Load(ctx context.Context) (Queue, error)
	Enqueue(ctx context.Context, urls []string) ([]Slot, error)
	Consume(ctx context.Context, slot Slot) error
}
