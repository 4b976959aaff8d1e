package fixture

import "context"

type Repository interface {
	ListFixtures(ctx context.Context) ([]Fixture, error)
	ReplaceFixtures(ctx context.Context, fixtures []Fixture) error
}
