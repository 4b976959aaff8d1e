package workbook

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/xuri/excelize/v2"

	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
	"github.com/riskibarqy/qw-league/internal/usecase"
)

// GameColumns is the ledger column order of the Games sheet.
var GameColumns = []string{
	"URL", "Date", "Map", "Server", "Match Tag", "Map Won", "Frags", "Team", "Player",
	"Eff", "Kills", "Deaths", "Suicides", "TK",
	"Given", "Taken", "EWEP", "To Die",
	"GA", "YA", "RA", "MH",
	"SG Acc", "LG Used", "LG Acc", "RL Hits", "LG Taken", "LG Kills", "LG Dropped",
	"RL Taken", "RL Kills", "RL Dropped",
	"Quads", "Pents", "Rings", "Self",
}

var standingColumns = []string{"#", "Team", "Games", "Maps", "Diff"}

// Write renders export as a workbook onto w.
func Write(w io.Writer, export usecase.LeagueExport) error {
	f, err := build(export)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

// WriteFile renders export into the xlsx file at path.
func WriteFile(path string, export usecase.LeagueExport) error {
	f, err := build(export)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save workbook %s", path)
	}
	return nil
}

func build(export usecase.LeagueExport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetGames); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "rename default sheet")
	}

	steps := []struct {
		sheet string
		fill  func(*excelize.File, string, usecase.LeagueExport) error
	}{
		{SheetGames, writeGames},
		{SheetPlayers, func(f *excelize.File, sheet string, e usecase.LeagueExport) error {
			return writePlayers(f, sheet, e.Players)
		}},
		{SheetStandins, func(f *excelize.File, sheet string, e usecase.LeagueExport) error {
			return writePlayers(f, sheet, e.Standins)
		}},
		{SheetUnmatched, writeUnmatched},
		{SheetStandings, writeStandings},
		{SheetTeamGames, writeTeamGames},
		{SheetImportedURLs, writeImportedURLs},
	}
	for _, step := range steps {
		if step.sheet != SheetGames {
			if _, err := f.NewSheet(step.sheet); err != nil {
				f.Close()
				return nil, errors.Wrapf(err, "create sheet %s", step.sheet)
			}
		}
		if err := step.fill(f, step.sheet, export); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "fill sheet %s", step.sheet)
		}
	}
	return f, nil
}

func writeGames(f *excelize.File, sheet string, e usecase.LeagueExport) error {
	if err := setRow(f, sheet, 1, stringsToCells(GameColumns)); err != nil {
		return err
	}
	for i, row := range e.Rows {
		if err := setRow(f, sheet, i+2, gameCells(row)); err != nil {
			return err
		}
	}
	return nil
}

func gameCells(r gamerow.GameRow) []any {
	return []any{
		r.URL, r.Date, r.Map, r.Server, r.MatchTag, r.MapWon, r.Frags, r.Team, r.Player,
		r.Efficiency, r.Kills, r.Deaths, r.Suicides, r.TeamKills,
		r.DamageGiven, r.DamageTaken, r.DamageEnemyWeapons, r.DamageToDie,
		r.GreenArmor, r.YellowArmor, r.RedArmor, r.MegaHealth,
		r.SGAccuracy, r.LGUsed, r.LGAccuracy, r.RLHits, r.LGTaken, r.LGKills, r.LGDropped,
		r.RLTaken, r.RLKills, r.RLDropped,
		r.Quads, r.Pents, r.Rings, r.DamageSelf,
	}
}

func writePlayers(f *excelize.File, sheet string, entries []playerstats.Entry) error {
	if err := setRow(f, sheet, 1, stringsToCells(usecase.PlayerColumns)); err != nil {
		return err
	}
	for i, entry := range entries {
		record := usecase.PlayerRecord(entry)
		cells := make([]any, 0, len(record))
		for _, field := range record {
			cells = append(cells, field.Value)
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeUnmatched(f *excelize.File, sheet string, e usecase.LeagueExport) error {
	if err := setRow(f, sheet, 1, []any{"Nick"}); err != nil {
		return err
	}
	for i, nick := range e.Unmatched {
		if err := setRow(f, sheet, i+2, []any{nick}); err != nil {
			return err
		}
	}
	return nil
}

func writeStandings(f *excelize.File, sheet string, e usecase.LeagueExport) error {
	if err := setRow(f, sheet, 1, stringsToCells(standingColumns)); err != nil {
		return err
	}
	for i, item := range e.Standings {
		record := usecase.StandingRecord(item)
		cells := make([]any, 0, len(record))
		for _, field := range record {
			cells = append(cells, field.Value)
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// writeTeamGames writes one row per game with a hyperlink cell per map,
// padded to the widest game.
func writeTeamGames(f *excelize.File, sheet string, e usecase.LeagueExport) error {
	maxMaps := 0
	for _, g := range e.Games {
		maxMaps = max(maxMaps, len(g.Maps))
	}

	header := []any{"#", "Team A", "Score", "Team B"}
	for i := 1; i <= maxMaps; i++ {
		header = append(header, "Map "+strconv.Itoa(i))
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, g := range e.Games {
		line := i + 2
		if err := setRow(f, sheet, line, []any{i + 1, g.TeamA, g.Score(), g.TeamB}); err != nil {
			return err
		}
		for j, m := range g.Maps {
			cell, err := excelize.CoordinatesToCellName(5+j, line)
			if err != nil {
				return err
			}
			if err := f.SetCellFormula(sheet, cell, hyperlinkFormula(m)); err != nil {
				return errors.Wrapf(err, "set map formula %s", cell)
			}
		}
	}
	return nil
}

func writeImportedURLs(f *excelize.File, sheet string, e usecase.LeagueExport) error {
	if err := setRow(f, sheet, 1, []any{"URL"}); err != nil {
		return err
	}
	for i, url := range e.ImportedURLs {
		if err := setRow(f, sheet, i+2, []any{url}); err != nil {
			return err
		}
	}
	return nil
}

// hyperlinkFormula renders HYPERLINK("url","name") with quotes doubled.
func hyperlinkFormula(m teamgame.Map) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`HYPERLINK("`)
	_, _ = buf.WriteString(escapeFormulaString(m.URL))
	_, _ = buf.WriteString(`","`)
	_, _ = buf.WriteString(escapeFormulaString(m.Name))
	_, _ = buf.WriteString(`")`)
	return buf.String()
}

func escapeFormulaString(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

func setRow(f *excelize.File, sheet string, line int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return errors.Wrapf(err, "set row %s!%s", sheet, cell)
	}
	return nil
}

func stringsToCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
