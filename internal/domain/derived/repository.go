package derived

import "context"

// Repository replaces all derived tables in one atomic write.
type Repository interface {
	ReplaceSnapshot(ctx context.Context, snapshot Snapshot) error
}
