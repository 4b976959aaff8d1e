package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/qw-league/internal/domain/derived"
	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
)

// DerivedRepository holds the output of the last aggregation run.
type DerivedRepository struct {
	mu       sync.RWMutex
	snapshot derived.Snapshot
}

func NewDerivedRepository() *DerivedRepository {
	return &DerivedRepository{}
}

func (r *DerivedRepository) ReplaceSnapshot(_ context.Context, snapshot derived.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot = derived.Snapshot{
		Players:   cloneEntries(snapshot.Players),
		Standins:  cloneEntries(snapshot.Standins),
		Unmatched: append([]string(nil), snapshot.Unmatched...),
		Standings: append([]leaguestanding.Standing(nil), snapshot.Standings...),
		Games:     cloneGames(snapshot.Games),
		MaxMaps:   snapshot.MaxMaps,
	}
	return nil
}

func (r *DerivedRepository) ListEntries(_ context.Context, kind roster.Kind) ([]playerstats.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if kind == roster.KindStandins {
		return cloneEntries(r.snapshot.Standins), nil
	}
	return cloneEntries(r.snapshot.Players), nil
}

func (r *DerivedRepository) ListUnmatched(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string{}, r.snapshot.Unmatched...), nil
}

func (r *DerivedRepository) ListStandings(_ context.Context) ([]leaguestanding.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]leaguestanding.Standing{}, r.snapshot.Standings...), nil
}

func (r *DerivedRepository) ListGames(_ context.Context) ([]teamgame.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneGames(r.snapshot.Games), nil
}

func cloneEntries(in []playerstats.Entry) []playerstats.Entry {
	out := make([]playerstats.Entry, 0, len(in))
	for _, entry := range in {
		entry.Player.Aliases = append([]string(nil), entry.Player.Aliases...)
		out = append(out, entry)
	}
	return out
}

func cloneGames(in []teamgame.Game) []teamgame.Game {
	out := make([]teamgame.Game, 0, len(in))
	for _, g := range in {
		g.Maps = append([]teamgame.Map(nil), g.Maps...)
		out = append(out, g)
	}
	return out
}
