package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/qw-league/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	players map[roster.Kind][]roster.Player
}

func NewRosterRepository(players, standins []roster.Player) *RosterRepository {
	return &RosterRepository{players: map[roster.Kind][]roster.Player{
		roster.KindPlayers:  clonePlayers(players),
		roster.KindStandins: clonePlayers(standins),
	}}
}

func (r *RosterRepository) ListPlayers(_ context.Context, kind roster.Kind) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clonePlayers(r.players[kind]), nil
}

func (r *RosterRepository) ReplacePlayers(_ context.Context, kind roster.Kind, players []roster.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[kind] = clonePlayers(players)
	return nil
}

func clonePlayers(in []roster.Player) []roster.Player {
	out := make([]roster.Player, 0, len(in))
	for _, p := range in {
		p.Aliases = append([]string(nil), p.Aliases...)
		out = append(out, p)
	}
	return out
}
