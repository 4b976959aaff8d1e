package workbook

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
	"github.com/riskibarqy/qw-league/internal/usecase"
)

func sourceWorkbook(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReaderLoadsSheetsByHeaderName(t *testing.T) {
	t.Parallel()

	src := sourceWorkbook(t, map[string][][]any{
		SheetPlayers: {
			{"Player", "Team", "Game Nicks", "Notes"},
			{"bps", "]sr[", "bps, bps•", "captain"},
			{},
			{"Bogojoker", "tsq", "bogojoker,bogo"},
		},
		SheetTeams: {
			{"Tag", "Name", "Logo"},
			{"]sr[", "Suddendeath", "https://example.com/sr.png"},
			{"tsq", "The Suicide Quad"},
		},
		SheetSchedule: {
			{"Round", "Team1", "Team2"},
			{"1", "]sr[", "tsq"},
			{"Final", "TBD", "TBD"},
		},
	})

	sheets, err := NewReader().Read(src)
	require.NoError(t, err)

	wantPlayers := []roster.Player{
		{Kind: roster.KindPlayers, Position: 0, Team: "]sr[", Aliases: []string{"bps", "bps•"}, Name: "bps"},
		{Kind: roster.KindPlayers, Position: 1, Team: "tsq", Aliases: []string{"bogojoker", "bogo"}, Name: "Bogojoker"},
	}
	if diff := cmp.Diff(wantPlayers, sheets.Players); diff != "" {
		t.Fatalf("players mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, sheets.Standins, "absent sheet stays nil")

	assert.Equal(t, []team.Team{
		{Tag: "]sr[", Name: "Suddendeath", LogoURL: "https://example.com/sr.png"},
		{Tag: "tsq", Name: "The Suicide Quad"},
	}, sheets.Teams)

	assert.Equal(t, []fixture.Fixture{
		{Position: 0, Round: "1", Team1: "]sr[", Team2: "tsq"},
		{Position: 1, Round: "Final", Team1: "TBD", Team2: "TBD"},
	}, sheets.Fixtures)
}

func TestReaderFailsFastOnMissingColumn(t *testing.T) {
	t.Parallel()

	src := sourceWorkbook(t, map[string][][]any{
		SheetSchedule: {
			{"Round", "Home", "Away"},
			{"1", "]sr[", "tsq"},
		},
	})

	_, err := NewReader().Read(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrMissingColumn))
	assert.Contains(t, err.Error(), "Team1")
}

func TestReaderRejectsInvalidRow(t *testing.T) {
	t.Parallel()

	src := sourceWorkbook(t, map[string][][]any{
		SheetStandins: {
			{"Team", "Game Nicks", "Player"},
			{"hx", "", "milton"},
		},
	})

	_, err := NewReader().Read(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrInvalidInput))
	assert.Contains(t, err.Error(), "row 2")
}

func TestReaderEmptySheetIsPresent(t *testing.T) {
	t.Parallel()

	src := sourceWorkbook(t, map[string][][]any{
		SheetStandins: {{"Team", "Game Nicks", "Player"}},
	})

	sheets, err := NewReader().Read(src)
	require.NoError(t, err)
	assert.NotNil(t, sheets.Standins)
	assert.Empty(t, sheets.Standins)
}

func TestWriteExport(t *testing.T) {
	t.Parallel()

	export := usecase.LeagueExport{
		Rows: []gamerow.GameRow{
			{URL: "u1", Date: "2024-01-01 20:00:00 +0000", Map: "dm2", Server: "qw.example", MatchTag: "qwl", MapWon: 1, Frags: 30, Team: "]sr[", Player: "bps", DamageSelf: 77},
		},
		ImportedURLs: []string{"u1", "u2"},
		Players: []playerstats.Entry{{
			Player: roster.Player{Team: "]sr[", Aliases: []string{"bps", "bps•"}, Name: "bps"},
			Stats:  playerstats.Stats{TotalFrags: 30, MapsPlayed: 1, MapsWon: 1, WinRate: 100, AvgFrags: 30, Rank: 42},
		}},
		Unmatched: []string{"stranger"},
		Standings: []leaguestanding.Standing{
			{Position: 1, TeamTag: "]sr[", TeamName: "Suddendeath", GameWins: 1, MapWins: 2, MapLosses: 1, Diff: 1},
		},
		Games: []teamgame.Game{
			{TeamA: "Suddendeath", TeamB: "The Suicide Quad", MapsWonA: 2, MapsWonB: 1, Maps: []teamgame.Map{
				{Name: "dm2", URL: "https://hub.quakeworld.nu/games/?gameId=1"},
				{Name: `e1"m2`, URL: "https://hub.quakeworld.nu/games/?gameId=2"},
			}},
			{TeamA: "Hell Xpress", TeamB: "Oeks", MapsWonA: 0, MapsWonB: 1, Maps: []teamgame.Map{
				{Name: "dm3", URL: "https://hub.quakeworld.nu/games/?gameId=3"},
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, export))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetGames, SheetPlayers, SheetStandins, SheetUnmatched,
		SheetStandings, SheetTeamGames, SheetImportedURLs,
	}, f.GetSheetList())

	games, err := f.GetRows(SheetGames)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, GameColumns, games[0])
	assert.Equal(t, "bps", games[1][8])
	assert.Equal(t, "77", games[1][len(GameColumns)-1])

	players, err := f.GetRows(SheetPlayers)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, usecase.PlayerColumns, players[0])
	assert.Equal(t, []string{"]sr[", "bps,bps•", "bps", "30", "1", "1", "100%", "30", "42"}, players[1][:9])

	standings, err := f.GetRows(SheetStandings)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"#", "Team", "Games", "Maps", "Diff"},
		{"1", "Suddendeath", "1-0", "2-1", "1"},
	}, standings)

	teamGames, err := f.GetRows(SheetTeamGames)
	require.NoError(t, err)
	assert.Equal(t, []string{"#", "Team A", "Score", "Team B", "Map 1", "Map 2"}, teamGames[0])

	formula, err := f.GetCellFormula(SheetTeamGames, "F2")
	require.NoError(t, err)
	assert.Equal(t, `HYPERLINK("https://hub.quakeworld.nu/games/?gameId=2","e1""m2")`, formula)

	formula, err = f.GetCellFormula(SheetTeamGames, "F3")
	require.NoError(t, err)
	assert.Empty(t, formula, "shorter games leave trailing map cells empty")

	urls, err := f.GetRows(SheetImportedURLs)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"URL"}, {"u1"}, {"u2"}}, urls)
}
