package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/qw-league/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type aggregationFixture struct {
	svc     *AggregationService
	ledger  *memory.LedgerRepository
	rosters *memory.RosterRepository
	derived *memory.DerivedRepository
	cache   *cache.Store
}

func ledgerMap(url, date, mapName string, redFrags, blueFrags int) []gamerow.GameRow {
	redWon, blueWon := 0, 0
	if redFrags > blueFrags {
		redWon = 1
	} else if blueFrags > redFrags {
		blueWon = 1
	}
	return []gamerow.GameRow{
		{URL: url, Date: date, Map: mapName, Server: "qw.example", MatchTag: "qwl", Team: "]sr[", Player: "bps", Frags: redFrags, MapWon: redWon, Efficiency: 60},
		{URL: url, Date: date, Map: mapName, Server: "qw.example", MatchTag: "qwl", Team: "tsq", Player: "Bogo", Frags: blueFrags, MapWon: blueWon, Efficiency: 40},
		{URL: url, Date: date, Map: mapName, Server: "qw.example", MatchTag: "qwl", Team: "tsq", Player: "Stranger", Frags: 1},
	}
}

func newAggregationFixture(t *testing.T) aggregationFixture {
	t.Helper()

	var rows []gamerow.GameRow
	rows = append(rows, ledgerMap("u1", "2024-01-01 20:00:00 +0000", "dm2", 30, 10)...)
	rows = append(rows, ledgerMap("u2", "2024-01-01 20:30:00 +0000", "e1m2", 12, 25)...)
	rows = append(rows, ledgerMap("u3", "2024-01-01 21:00:00 +0000", "dm3", 40, 20)...)

	f := aggregationFixture{
		ledger:  memory.NewLedgerRepository(rows),
		rosters: memory.NewRosterRepository(memory.SeedPlayers(), nil),
		derived: memory.NewDerivedRepository(),
		cache:   cache.NewStore(0),
	}
	f.svc = NewAggregationService(
		f.ledger,
		f.rosters,
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewFixtureRepository(memory.SeedFixtures()),
		f.derived,
		f.cache,
		nil,
	)
	return f
}

func TestAggregationServiceRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAggregationFixture(t)
	f.cache.Set(ctx, queryCachePrefix+EndpointStandings, "stale")

	res, err := f.svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, res.Rows)
	assert.Equal(t, 1, res.Games)
	assert.Equal(t, 2, res.Teams)
	assert.Equal(t, 1, res.Unmatched)

	_, ok := f.cache.Get(ctx, queryCachePrefix+EndpointStandings)
	assert.False(t, ok, "query cache invalidated")

	standings, err := f.derived.ListStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "]sr[", standings[0].TeamTag)
	assert.Equal(t, 1, standings[0].GameWins)
	assert.Equal(t, 2, standings[0].MapWins)
	assert.Equal(t, 1, standings[0].MapLosses)

	unmatched, err := f.derived.ListUnmatched(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"stranger"}, unmatched)

	entries, err := f.derived.ListEntries(ctx, roster.KindPlayers)
	require.NoError(t, err)
	byName := make(map[string]int)
	for _, entry := range entries {
		byName[entry.Player.Name] = entry.Stats.MapsPlayed
	}
	assert.Equal(t, 3, byName["bps"])
	assert.Equal(t, 3, byName["bogojoker"], "aliases match case-insensitively")
	assert.Equal(t, 0, byName["milton"])
}

func TestAggregationServiceIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAggregationFixture(t)

	_, err := f.svc.Run(ctx)
	require.NoError(t, err)
	first, err := f.derived.ListEntries(ctx, roster.KindPlayers)
	require.NoError(t, err)
	firstStandings, err := f.derived.ListStandings(ctx)
	require.NoError(t, err)

	_, err = f.svc.Run(ctx)
	require.NoError(t, err)
	second, err := f.derived.ListEntries(ctx, roster.KindPlayers)
	require.NoError(t, err)
	secondStandings, err := f.derived.ListStandings(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstStandings, secondStandings)
}

func TestAggregationServiceAmbiguousAliasWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAggregationFixture(t)
	_, err := f.svc.Run(ctx)
	require.NoError(t, err)
	before, err := f.derived.ListStandings(ctx)
	require.NoError(t, err)

	require.NoError(t, f.rosters.ReplacePlayers(ctx, roster.KindStandins, []roster.Player{
		{Kind: roster.KindStandins, Position: 1, Name: "impostor", Aliases: []string{"BPS"}},
	}))

	_, err = f.svc.Run(ctx)
	require.ErrorIs(t, err, roster.ErrAmbiguousAlias)

	after, err := f.derived.ListStandings(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
