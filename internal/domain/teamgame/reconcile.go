package teamgame

import (
	"sort"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/team"
)

// Stage selects group (numeric rounds) or playoff (non-numeric rounds) games.
type Stage string

const (
	StageGroup   Stage = "group"
	StagePlayoff Stage = "playoff"
)

func (s Stage) includes(round string) bool {
	switch s {
	case StageGroup:
		return fixture.IsGroupRound(round)
	case StagePlayoff:
		return fixture.IsPlayoffRound(round)
	default:
		return false
	}
}

// Reconcile walks the fixtures of one stage in stored order and pairs each
// with the next unconsumed played game of the same team pair. Fixtures
// without a remaining game become placeholders.
func Reconcile(games []Game, fixtures []fixture.Fixture, dir team.Directory, stage Stage) []Entry {
	byPair := make(map[string][]Game)
	for _, g := range games {
		if !stage.includes(g.Round) {
			continue
		}
		key := fixture.PairKey(g.TeamATag, g.TeamBTag)
		byPair[key] = append(byPair[key], g)
	}

	cursor := make(map[string]int)
	out := make([]Entry, 0, len(fixtures))
	for _, f := range fixtures {
		if !stage.includes(f.Round) {
			continue
		}

		key := fixture.PairKey(dir.Canonical(f.Team1), dir.Canonical(f.Team2))
		if next := cursor[key]; next < len(byPair[key]) {
			out = append(out, playedEntry(f.Round, byPair[key][next]))
			cursor[key] = next + 1
			continue
		}
		out = append(out, placeholder(f.Round, f.Team1, f.Team2))
	}
	return out
}

// ByRound groups labelled games per round without pair reconciliation and
// fills in unplayed fixtures of numeric rounds whose pair has no game in
// that round yet. Numeric rounds sort numerically, the rest lexically after.
func ByRound(games []Game, fixtures []fixture.Fixture, dir team.Directory) []Entry {
	rounds := make(map[string][]Entry)
	pairs := make(map[string]map[string]struct{})
	var order []string

	add := func(round, pair string, entry Entry) {
		if _, ok := rounds[round]; !ok {
			order = append(order, round)
			pairs[round] = make(map[string]struct{})
		}
		rounds[round] = append(rounds[round], entry)
		pairs[round][pair] = struct{}{}
	}

	for _, g := range games {
		if g.Round == "" {
			continue
		}
		add(g.Round, fixture.PairKey(g.TeamATag, g.TeamBTag), playedEntry(g.Round, g))
	}

	for _, f := range fixtures {
		if !fixture.IsGroupRound(f.Round) {
			continue
		}
		pair := fixture.PairKey(dir.Canonical(f.Team1), dir.Canonical(f.Team2))
		if _, ok := pairs[f.Round][pair]; ok {
			continue
		}
		add(f.Round, pair, placeholder(f.Round, f.Team1, f.Team2))
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, aNum := fixture.RoundNumber(order[i])
		b, bNum := fixture.RoundNumber(order[j])
		switch {
		case aNum && bNum:
			return a < b
		case aNum != bNum:
			return aNum
		default:
			return order[i] < order[j]
		}
	})

	out := make([]Entry, 0, len(games)+len(fixtures))
	for _, round := range order {
		out = append(out, rounds[round]...)
	}
	return out
}
