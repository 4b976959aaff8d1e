package leaguestanding

import "context"

type Repository interface {
	ListStandings(ctx context.Context) ([]Standing, error)
}
