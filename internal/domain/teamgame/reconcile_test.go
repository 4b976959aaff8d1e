package teamgame

import (
	"testing"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func game(round, a, b string, wonA, wonB int) Game {
	return Game{
		Round:    round,
		TeamATag: a,
		TeamBTag: b,
		TeamA:    a,
		TeamB:    b,
		MapsWonA: wonA,
		MapsWonB: wonB,
		Maps:     []Map{{Name: "dm2", URL: "u-" + a + b + round}},
	}
}

func TestReconcileConsumesGamesInOrder(t *testing.T) {
	t.Parallel()

	games := []Game{game("1", "A", "B", 2, 1)}
	fixtures := []fixture.Fixture{
		{Round: "1", Team1: "B", Team2: "A"},
		{Round: "4", Team1: "A", Team2: "B"},
	}

	got := Reconcile(games, fixtures, team.NewDirectory(nil), StageGroup)

	require.Len(t, got, 2)
	assert.True(t, got[0].Played)
	assert.Equal(t, "1", got[0].Round)
	assert.Equal(t, 2, got[0].MapsWonA)
	assert.False(t, got[1].Played)
	assert.Equal(t, "4", got[1].Round)
	assert.Equal(t, "A", got[1].TeamA)
	assert.Empty(t, got[1].Maps)
}

func TestReconcileSplitsStages(t *testing.T) {
	t.Parallel()

	games := []Game{
		game("2", "A", "B", 1, 0),
		game("Semi", "A", "B", 0, 2),
		game("", "A", "B", 5, 5),
	}
	fixtures := []fixture.Fixture{
		{Round: "Semi", Team1: "A", Team2: "B"},
		{Round: "2", Team1: "A", Team2: "B"},
	}
	dir := team.NewDirectory(nil)

	group := Reconcile(games, fixtures, dir, StageGroup)
	require.Len(t, group, 1)
	assert.Equal(t, "2", group[0].Round)
	assert.Equal(t, 1, group[0].MapsWonA)

	playoff := Reconcile(games, fixtures, dir, StagePlayoff)
	require.Len(t, playoff, 1)
	assert.Equal(t, "Semi", playoff[0].Round)
	assert.Equal(t, 2, playoff[0].MapsWonB)
}

func TestReconcileResolvesNamesToTags(t *testing.T) {
	t.Parallel()

	dir := team.NewDirectory([]team.Team{{Tag: "]sr[", Name: "Suddendeath"}, {Tag: "tsq", Name: "The Suicide Quad"}})
	games := []Game{game("1", "tsq", "]sr[", 3, 0)}
	fixtures := []fixture.Fixture{{Round: "1", Team1: "Suddendeath", Team2: "the suicide quad"}}

	got := Reconcile(games, fixtures, dir, StageGroup)
	require.Len(t, got, 1)
	assert.True(t, got[0].Played)
}

func TestByRound(t *testing.T) {
	t.Parallel()

	games := []Game{
		game("10", "A", "B", 1, 0),
		game("2", "C", "D", 0, 1),
		game("Final", "A", "C", 2, 0),
	}
	fixtures := []fixture.Fixture{
		{Round: "2", Team1: "D", Team2: "C"},
		{Round: "2", Team1: "A", Team2: "B"},
		{Round: "Final", Team1: "B", Team2: "D"},
	}

	got := ByRound(games, fixtures, team.NewDirectory(nil))

	rounds := make([]string, 0, len(got))
	for _, entry := range got {
		rounds = append(rounds, entry.Round+":"+entry.TeamA+entry.TeamB)
	}
	assert.Equal(t, []string{"2:CD", "2:AB", "10:AB", "Final:AC"}, rounds)
	assert.False(t, got[1].Played)
	assert.True(t, got[0].Played)
}
