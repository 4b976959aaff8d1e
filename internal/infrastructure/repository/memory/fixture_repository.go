package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures []fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	return &FixtureRepository{fixtures: append([]fixture.Fixture(nil), fixtures...)}
}

func (r *FixtureRepository) ListFixtures(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	return append(out, r.fixtures...), nil
}

func (r *FixtureRepository) ReplaceFixtures(_ context.Context, fixtures []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fixtures = append([]fixture.Fixture(nil), fixtures...)
	return nil
}
