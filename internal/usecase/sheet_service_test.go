package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/riskibarqy/qw-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/qw-league/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sheetFixture struct {
	svc      *SheetService
	rosters  *memory.RosterRepository
	teams    *memory.TeamRepository
	fixtures *memory.FixtureRepository
	cache    *cache.Store
}

func newSheetFixture(t *testing.T) sheetFixture {
	t.Helper()

	derivedRepo := memory.NewDerivedRepository()
	f := sheetFixture{
		rosters:  memory.NewRosterRepository(memory.SeedPlayers(), nil),
		teams:    memory.NewTeamRepository(memory.SeedTeams()),
		fixtures: memory.NewFixtureRepository(memory.SeedFixtures()),
		cache:    cache.NewStore(0),
	}
	f.svc = NewSheetService(
		memory.NewLedgerRepository(nil),
		f.rosters,
		f.teams,
		f.fixtures,
		derivedRepo,
		derivedRepo,
		derivedRepo,
		f.cache,
		nil,
	)
	return f
}

func TestSheetServiceLoadReplacesPresentSheets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSheetFixture(t)
	f.cache.Set(ctx, queryCachePrefix+EndpointTeams, "stale")

	res, err := f.svc.Load(ctx, LeagueSheets{
		Standins: []roster.Player{{Team: "tsq", Aliases: []string{"ok"}, Name: "ok"}},
		Fixtures: []fixture.Fixture{
			{Round: "1", Team1: "]sr[", Team2: "tsq"},
			{Round: "Final", Team1: "TBD", Team2: "TBD"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, SheetLoadResult{Standins: 1, Fixtures: 2}, res)

	standins, err := f.rosters.ListPlayers(ctx, roster.KindStandins)
	require.NoError(t, err)
	require.Len(t, standins, 1)
	assert.Equal(t, roster.KindStandins, standins[0].Kind)

	players, err := f.rosters.ListPlayers(ctx, roster.KindPlayers)
	require.NoError(t, err)
	assert.Len(t, players, len(memory.SeedPlayers()), "absent sheet untouched")

	fixtures, err := f.fixtures.ListFixtures(ctx)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, 1, fixtures[1].Position)

	_, ok := f.cache.Get(ctx, queryCachePrefix+EndpointTeams)
	assert.False(t, ok)
}

func TestSheetServiceLoadRejectsAliasCollidingWithStoredRoster(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSheetFixture(t)

	_, err := f.svc.Load(ctx, LeagueSheets{
		Standins: []roster.Player{{Team: "hx", Aliases: []string{"BOGO"}, Name: "impostor"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, roster.ErrAmbiguousAlias))

	standins, err := f.rosters.ListPlayers(ctx, roster.KindStandins)
	require.NoError(t, err)
	assert.Empty(t, standins)
}

func TestSheetServiceLoadRejectsInvalidTeam(t *testing.T) {
	t.Parallel()

	f := newSheetFixture(t)
	_, err := f.svc.Load(context.Background(), LeagueSheets{
		Teams: []team.Team{{Tag: "nm"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSheetServiceExport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	agg := newAggregationFixture(t)
	_, err := agg.svc.Run(ctx)
	require.NoError(t, err)

	svc := NewSheetService(
		agg.ledger,
		agg.rosters,
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewFixtureRepository(memory.SeedFixtures()),
		agg.derived,
		agg.derived,
		agg.derived,
		nil,
		nil,
	)
	out, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, out.Rows, 9)
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, out.ImportedURLs)
	assert.Len(t, out.Standings, 2)
	assert.Len(t, out.Games, 1)
	assert.Equal(t, []string{"stranger"}, out.Unmatched)
}
