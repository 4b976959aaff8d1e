package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListTeams(ctx context.Context) ([]Team, error)
	ReplaceTeams(ctx context.Context, teams []Team) error
}
