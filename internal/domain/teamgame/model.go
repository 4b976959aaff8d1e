package teamgame

import "strconv"

// Map is one map of a game with the frags each side scored on it.
type Map struct {
	Name   string
	URL    string
	Date   string
	FragsA int
	FragsB int
}

// Game is a multi-map contest between two teams, keyed by server, match tag
// and day.
type Game struct {
	Position int
	Key      string
	Round    string
	TeamATag string
	TeamBTag string
	TeamA    string
	TeamB    string
	MapsWonA int
	MapsWonB int
	PlayedAt string
	Maps     []Map
}

// Score renders the map score as "a-b".
func (g Game) Score() string {
	return strconv.Itoa(g.MapsWonA) + "-" + strconv.Itoa(g.MapsWonB)
}

// Entry is one reconciled fixture: either a played game or a placeholder.
type Entry struct {
	Round    string
	TeamA    string
	TeamB    string
	Played   bool
	MapsWonA int
	MapsWonB int
	Maps     []Map
}

func playedEntry(round string, g Game) Entry {
	maps := make([]Map, len(g.Maps))
	copy(maps, g.Maps)
	return Entry{
		Round:    round,
		TeamA:    g.TeamA,
		TeamB:    g.TeamB,
		Played:   true,
		MapsWonA: g.MapsWonA,
		MapsWonB: g.MapsWonB,
		Maps:     maps,
	}
}

func placeholder(round, teamA, teamB string) Entry {
	return Entry{Round: round, TeamA: teamA, TeamB: teamB, Maps: []Map{}}
}
