package playerstats

import (
	"context"

	"github.com/riskibarqy/qw-league/internal/domain/roster"
)

// Repository reads the derived player tables written by an aggregation run.
type Repository interface {
	ListEntries(ctx context.Context, kind roster.Kind) ([]Entry, error)
	ListUnmatched(ctx context.Context) ([]string, error)
}
