package teamgame

import "context"

// Repository reads the team games log written by an aggregation run.
type Repository interface {
	ListGames(ctx context.Context) ([]Game, error)
}
