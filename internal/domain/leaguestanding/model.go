package leaguestanding

import "strconv"

// Record is a team's map and game tally.
type Record struct {
	Tag        string
	MapWins    int
	MapLosses  int
	GameWins   int
	GameLosses int
}

func (r Record) Diff() int {
	return r.MapWins - r.MapLosses
}

// Standing represents a league table row for one team.
type Standing struct {
	Position   int
	TeamTag    string
	TeamName   string
	GameWins   int
	GameLosses int
	MapWins    int
	MapLosses  int
	Diff       int
}

func (s Standing) GamesText() string {
	return strconv.Itoa(s.GameWins) + "-" + strconv.Itoa(s.GameLosses)
}

func (s Standing) MapsText() string {
	return strconv.Itoa(s.MapWins) + "-" + strconv.Itoa(s.MapLosses)
}

// Malformed describes a map or game skipped because it does not have exactly
// two teams.
type Malformed struct {
	Kind  string
	Key   string
	Teams []string
}
