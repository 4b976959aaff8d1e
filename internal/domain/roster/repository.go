package roster

import "context"

type Repository interface {
	ListPlayers(ctx context.Context, kind Kind) ([]Player, error)
	ReplacePlayers(ctx context.Context, kind Kind, players []Player) error
}
