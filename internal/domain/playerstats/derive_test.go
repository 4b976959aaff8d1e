package playerstats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAggregatesMatchedRows(t *testing.T) {
	t.Parallel()

	rows := []gamerow.GameRow{
		{URL: "u1", Player: "BPS", Frags: 30, MapWon: 1, Efficiency: 60, SGAccuracy: 40, LGUsed: 1, LGAccuracy: 30, RLKills: 4, DamageGiven: 9000, DamageEnemyWeapons: 3000, TeamKills: 1, Suicides: 2, Quads: 1},
		{URL: "u2", Player: "bps2", Frags: 10, MapWon: 0, Efficiency: 40, SGAccuracy: 20, LGUsed: 0, LGAccuracy: 99, RLKills: 2, DamageGiven: 5000, DamageEnemyWeapons: 1000, TeamKills: 1},
		{URL: "u1", Player: "stranger", Frags: 5},
	}
	players := []roster.Player{{Name: "bps", Team: "]sr[", Aliases: []string{"bps", "BPS2"}}}

	res, err := Derive(rows, players, nil)
	require.NoError(t, err)
	require.Len(t, res.Players, 1)

	got := res.Players[0].Stats
	assert.Equal(t, 40, got.TotalFrags)
	assert.Equal(t, 2, got.MapsPlayed)
	assert.Equal(t, 1, got.MapsWon)
	assert.InDelta(t, 50, got.WinRate, 1e-9)
	assert.InDelta(t, 20, got.AvgFrags, 1e-9)
	assert.InDelta(t, 50, got.AvgEff, 1e-9)
	assert.InDelta(t, 30, got.AvgLG, 1e-9, "lg averaged over used rows only")
	assert.InDelta(t, 1, got.AvgBores, 1e-9)
	// 50*0.05 + 20 + 7000/1000 + 2000/1000 - 1 + 3 = 33.5
	assert.Equal(t, 34, got.Rank)
	assert.Equal(t, []string{"stranger"}, res.Unmatched)
}

func TestDeriveZeroMapsKeepsDefaults(t *testing.T) {
	t.Parallel()

	res, err := Derive(nil, []roster.Player{{Name: "ghost", Aliases: []string{"ghost"}}}, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(Stats{}, res.Players[0].Stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveSortsByRankStable(t *testing.T) {
	t.Parallel()

	rows := []gamerow.GameRow{
		{Player: "a", Frags: 10},
		{Player: "b", Frags: 30},
		{Player: "c", Frags: 10},
	}
	players := []roster.Player{
		{Name: "A", Aliases: []string{"a"}},
		{Name: "B", Aliases: []string{"b"}},
		{Name: "C", Aliases: []string{"c"}},
	}

	res, err := Derive(rows, players, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Players))
	for _, entry := range res.Players {
		names = append(names, entry.Player.Name)
	}
	assert.Equal(t, []string{"B", "A", "C"}, names)
	assert.Equal(t, 1, res.Players[0].Player.Position)
}

func TestDeriveStandinsSeparateAndExcludedFromUnmatched(t *testing.T) {
	t.Parallel()

	rows := []gamerow.GameRow{{Player: "sub", Frags: 12}, {Player: "main", Frags: 3}}
	res, err := Derive(rows,
		[]roster.Player{{Name: "Main", Aliases: []string{"main"}}},
		[]roster.Player{{Name: "Sub", Aliases: []string{"SUB"}}},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Players[0].Stats.TotalFrags)
	assert.Equal(t, 12, res.Standins[0].Stats.TotalFrags)
	assert.Empty(t, res.Unmatched)
}

func TestDeriveRejectsSharedAlias(t *testing.T) {
	t.Parallel()

	_, err := Derive(nil,
		[]roster.Player{{Name: "A", Aliases: []string{"x"}}},
		[]roster.Player{{Name: "B", Aliases: []string{"X"}}},
	)
	require.ErrorIs(t, err, roster.ErrAmbiguousAlias)
}

func TestRankScore(t *testing.T) {
	t.Parallel()

	s := Stats{WinRate: 100, AvgFrags: 20.2, AvgDamage: 8000, AvgEWEP: 2500, AvgTK: 0.5, AvgRLKilled: 1.5}
	// 5 + 20.2 + 8 + 2.5 - 0.5 + 1.5 = 36.7
	assert.Equal(t, 37, RankScore(s))
	assert.Equal(t, "57%", Percent(56.6))
}
