package derived

import (
	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
)

// Snapshot is every table an aggregation run rewrites.
type Snapshot struct {
	Players   []playerstats.Entry
	Standins  []playerstats.Entry
	Unmatched []string
	Standings []leaguestanding.Standing
	Games     []teamgame.Game
	MaxMaps   int
}
