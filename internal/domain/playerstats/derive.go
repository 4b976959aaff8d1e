package playerstats

import (
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
)

// Result is the output of one stats derivation.
type Result struct {
	Players   []Entry
	Standins  []Entry
	Unmatched []string
}

type totals struct {
	frags, played, won        int
	eff, sg, lg               float64
	lgUses                    int
	rlTaken, rlKilled, rlDrop int
	tk, bores, dmg, ewep, q   int
}

// Derive folds the whole ledger into per-player stats for both rosters.
// Aliases must be unique across the rosters.
func Derive(rows []gamerow.GameRow, players, standins []roster.Player) (Result, error) {
	if err := roster.ValidateAliases(players, standins); err != nil {
		return Result{}, err
	}

	return Result{
		Players:   deriveRoster(rows, players),
		Standins:  deriveRoster(rows, standins),
		Unmatched: unmatchedNicks(rows, players, standins),
	}, nil
}

func deriveRoster(rows []gamerow.GameRow, players []roster.Player) []Entry {
	out := make([]Entry, 0, len(players))
	for _, player := range players {
		aliases := aliasSet(player)
		var acc totals
		for _, row := range rows {
			if _, ok := aliases[strings.ToLower(row.Player)]; !ok {
				continue
			}
			acc.add(row)
		}
		out = append(out, Entry{Player: player, Stats: acc.stats()})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stats.Rank > out[j].Stats.Rank
	})
	for i := range out {
		out[i].Player.Position = i + 1
	}
	return out
}

func (t *totals) add(row gamerow.GameRow) {
	t.frags += row.Frags
	t.played++
	t.won += row.MapWon
	t.eff += row.Efficiency
	t.sg += row.SGAccuracy
	if row.LGUsed == 1 {
		t.lg += row.LGAccuracy
		t.lgUses++
	}
	t.rlTaken += row.RLTaken
	t.rlKilled += row.RLKills
	t.rlDrop += row.RLDropped
	t.tk += row.TeamKills
	t.bores += row.Suicides
	t.dmg += row.DamageGiven
	t.ewep += row.DamageEnemyWeapons
	t.q += row.Quads
}

func (t totals) stats() Stats {
	s := Stats{
		TotalFrags: t.frags,
		MapsPlayed: t.played,
		MapsWon:    t.won,
	}
	if t.played == 0 {
		return s
	}

	n := float64(t.played)
	s.WinRate = float64(t.won) / n * 100
	s.AvgFrags = float64(t.frags) / n
	s.AvgEff = t.eff / n
	s.AvgSG = t.sg / n
	if t.lgUses > 0 {
		s.AvgLG = t.lg / float64(t.lgUses)
	}
	s.AvgRLTaken = float64(t.rlTaken) / n
	s.AvgRLKilled = float64(t.rlKilled) / n
	s.AvgRLDropped = float64(t.rlDrop) / n
	s.AvgTK = float64(t.tk) / n
	s.AvgBores = float64(t.bores) / n
	s.AvgDamage = float64(t.dmg) / n
	s.AvgEWEP = float64(t.ewep) / n
	s.AvgQuads = float64(t.q) / n
	s.Rank = RankScore(s)
	return s
}

// RankScore weights frag output with small corrective terms.
func RankScore(s Stats) int {
	score := s.WinRate*0.05 + s.AvgFrags + s.AvgDamage/1000 + s.AvgEWEP/1000 - s.AvgTK + s.AvgRLKilled
	return int(math.Round(score))
}

func aliasSet(player roster.Player) map[string]struct{} {
	out := make(map[string]struct{}, len(player.Aliases))
	for _, alias := range player.Aliases {
		out[strings.ToLower(alias)] = struct{}{}
	}
	return out
}

// unmatchedNicks lists, in ledger order, lower-cased nicknames that match no
// alias in either roster.
func unmatchedNicks(rows []gamerow.GameRow, players, standins []roster.Player) []string {
	known := make(map[string]struct{})
	for _, list := range [][]roster.Player{players, standins} {
		for _, player := range list {
			for alias := range aliasSet(player) {
				known[alias] = struct{}{}
			}
		}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range rows {
		nick := strings.ToLower(row.Player)
		if nick == "" {
			continue
		}
		if _, ok := seen[nick]; ok {
			continue
		}
		seen[nick] = struct{}{}
		if _, ok := known[nick]; ok {
			continue
		}
		out = append(out, nick)
	}
	return out
}
