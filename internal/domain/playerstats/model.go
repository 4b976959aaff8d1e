package playerstats

import "github.com/riskibarqy/qw-league/internal/domain/roster"

// Stats is the aggregate of every ledger row matched to one player.
// Averages are unrounded; display formatting rounds them.
type Stats struct {
	TotalFrags int
	MapsPlayed int
	MapsWon    int

	WinRate      float64
	AvgFrags     float64
	AvgEff       float64
	AvgSG        float64
	AvgLG        float64
	AvgRLTaken   float64
	AvgRLKilled  float64
	AvgRLDropped float64
	AvgTK        float64
	AvgBores     float64
	AvgDamage    float64
	AvgEWEP      float64
	AvgQuads     float64

	Rank int
}

// Entry pairs a roster player with freshly derived stats.
type Entry struct {
	Player roster.Player
	Stats  Stats
}
