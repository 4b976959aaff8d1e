package leaguestanding

import (
	"sort"
	"time"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
)

const (
	MalformedMap  = "map"
	MalformedGame = "game"
)

// Result is the output of one standings derivation.
type Result struct {
	Standings []Standing
	Games     []teamgame.Game
	MaxMaps   int
	Malformed []Malformed
}

type mapGroup struct {
	url   string
	name  string
	date  string
	key   string
	teams []string
	won   map[string]bool
	frags map[string]int
}

type gameGroup struct {
	key     string
	teams   []string
	mapsWon map[string]int
	maps    []*mapGroup
}

// Derive groups the ledger into maps and games, tallies team records and
// builds the games log. Fixtures label played games with their round.
func Derive(rows []gamerow.GameRow, dir team.Directory, fixtures []fixture.Fixture) Result {
	maps := groupMaps(rows)

	var res Result
	records := make(map[string]*Record)
	var recordOrder []string
	record := func(tag string) *Record {
		if r, ok := records[tag]; ok {
			return r
		}
		r := &Record{Tag: tag}
		records[tag] = r
		recordOrder = append(recordOrder, tag)
		return r
	}

	games := make(map[string]*gameGroup)
	var gameOrder []string
	for _, m := range maps {
		if len(m.teams) != 2 {
			res.Malformed = append(res.Malformed, Malformed{Kind: MalformedMap, Key: m.url, Teams: m.teams})
			continue
		}

		g, ok := games[m.key]
		if !ok {
			g = &gameGroup{key: m.key, mapsWon: make(map[string]int)}
			games[m.key] = g
			gameOrder = append(gameOrder, m.key)
		}
		g.maps = append(g.maps, m)

		for _, tag := range m.teams {
			if !containsTeam(g.teams, tag) {
				g.teams = append(g.teams, tag)
			}
			if m.won[tag] {
				record(tag).MapWins++
				g.mapsWon[tag]++
			} else {
				record(tag).MapLosses++
			}
		}
	}

	for _, key := range gameOrder {
		g := games[key]
		if len(g.maps) > res.MaxMaps {
			res.MaxMaps = len(g.maps)
		}
		if len(g.teams) != 2 {
			res.Malformed = append(res.Malformed, Malformed{Kind: MalformedGame, Key: key, Teams: g.teams})
			continue
		}

		a, b := g.teams[0], g.teams[1]
		switch wonA, wonB := g.mapsWon[a], g.mapsWon[b]; {
		case wonA > wonB:
			record(a).GameWins++
			record(b).GameLosses++
		case wonB > wonA:
			record(b).GameWins++
			record(a).GameLosses++
		}

		res.Games = append(res.Games, buildGame(g, dir))
	}

	res.Standings = buildStandings(records, recordOrder, dir)

	sort.SliceStable(res.Games, func(i, j int) bool {
		return earliest(res.Games[i]).Before(earliest(res.Games[j]))
	})
	for i := range res.Games {
		res.Games[i].Position = i + 1
	}
	labelRounds(res.Games, fixtures, dir)

	return res
}

func groupMaps(rows []gamerow.GameRow) []*mapGroup {
	byURL := make(map[string]*mapGroup)
	out := make([]*mapGroup, 0)
	for _, row := range rows {
		m, ok := byURL[row.URL]
		if !ok {
			m = &mapGroup{
				url:   row.URL,
				name:  row.Map,
				date:  row.Date,
				key:   row.GameKey(),
				won:   make(map[string]bool),
				frags: make(map[string]int),
			}
			byURL[row.URL] = m
			out = append(out, m)
		}
		if !containsTeam(m.teams, row.Team) {
			m.teams = append(m.teams, row.Team)
			m.won[row.Team] = row.Won()
		}
		m.frags[row.Team] += row.Frags
	}
	return out
}

func buildGame(g *gameGroup, dir team.Directory) teamgame.Game {
	a, b := g.teams[0], g.teams[1]

	ordered := make([]*mapGroup, len(g.maps))
	copy(ordered, g.maps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return gamerow.ParseDate(ordered[i].date).Before(gamerow.ParseDate(ordered[j].date))
	})

	maps := make([]teamgame.Map, 0, len(ordered))
	for _, m := range ordered {
		maps = append(maps, teamgame.Map{
			Name:   m.name,
			URL:    m.url,
			Date:   m.date,
			FragsA: m.frags[a],
			FragsB: m.frags[b],
		})
	}

	return teamgame.Game{
		Key:      g.key,
		TeamATag: a,
		TeamBTag: b,
		TeamA:    dir.Name(a),
		TeamB:    dir.Name(b),
		MapsWonA: g.mapsWon[a],
		MapsWonB: g.mapsWon[b],
		PlayedAt: maps[0].Date,
		Maps:     maps,
	}
}

func buildStandings(records map[string]*Record, order []string, dir team.Directory) []Standing {
	list := make([]Record, 0, len(order))
	for _, tag := range order {
		list = append(list, *records[tag])
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Diff() != list[j].Diff() {
			return list[i].Diff() > list[j].Diff()
		}
		return list[i].GameWins > list[j].GameWins
	})

	out := make([]Standing, 0, len(list))
	for i, r := range list {
		out = append(out, Standing{
			Position:   i + 1,
			TeamTag:    r.Tag,
			TeamName:   dir.Name(r.Tag),
			GameWins:   r.GameWins,
			GameLosses: r.GameLosses,
			MapWins:    r.MapWins,
			MapLosses:  r.MapLosses,
			Diff:       r.Diff(),
		})
	}
	return out
}

// labelRounds gives each game, in log order, the round of the first unused
// fixture for its team pair.
func labelRounds(games []teamgame.Game, fixtures []fixture.Fixture, dir team.Directory) {
	used := make([]bool, len(fixtures))
	keys := make([]string, len(fixtures))
	for i, f := range fixtures {
		keys[i] = fixture.PairKey(dir.Canonical(f.Team1), dir.Canonical(f.Team2))
	}

	for gi := range games {
		key := fixture.PairKey(games[gi].TeamATag, games[gi].TeamBTag)
		for fi := range fixtures {
			if used[fi] || keys[fi] != key || fixtures[fi].Round == "" {
				continue
			}
			used[fi] = true
			games[gi].Round = fixtures[fi].Round
			break
		}
	}
}

func earliest(g teamgame.Game) time.Time {
	var first time.Time
	for i, m := range g.Maps {
		at := gamerow.ParseDate(m.Date)
		if i == 0 || at.Before(first) {
			first = at
		}
	}
	return first
}

func containsTeam(teams []string, tag string) bool {
	for _, item := range teams {
		if item == tag {
			return true
		}
	}
	return false
}
