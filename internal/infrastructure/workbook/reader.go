// Package workbook reads league source sheets from and writes derived tables
// to xlsx workbooks.
package workbook

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/riskibarqy/qw-league/internal/usecase"
)

const (
	SheetPlayers      = "Players"
	SheetStandins     = "Standins"
	SheetTeams        = "Teams"
	SheetSchedule     = "Schedule"
	SheetGames        = "Games"
	SheetUnmatched    = "UnmatchedPlayers"
	SheetStandings    = "Standings"
	SheetTeamGames    = "TeamGames"
	SheetImportedURLs = "ImportedURLs"
)

const (
	columnTeam      = "Team"
	columnGameNicks = "Game Nicks"
	columnPlayer    = "Player"
	columnTag       = "Tag"
	columnName      = "Name"
	columnLogo      = "Logo"
	columnRound     = "Round"
	columnTeam1     = "Team1"
	columnTeam2     = "Team2"
)

type rosterRecord struct {
	Team  string
	Nicks string `validate:"required"`
	Name  string `validate:"required"`
}

type teamRecord struct {
	Tag  string `validate:"required"`
	Name string `validate:"required"`
	Logo string `validate:"omitempty,url"`
}

type fixtureRecord struct {
	Round string
	Team1 string `validate:"required"`
	Team2 string `validate:"required"`
}

// Reader loads the admin-maintained sheets. Columns are found by header
// name; absent sheets are reported as nil tables.
type Reader struct {
	validate *validator.Validate
}

func NewReader() *Reader {
	return &Reader{validate: validator.New()}
}

func (r *Reader) ReadFile(path string) (usecase.LeagueSheets, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return usecase.LeagueSheets{}, errors.Wrapf(err, "open workbook %s", path)
	}
	defer f.Close()

	return r.read(f)
}

func (r *Reader) Read(src io.Reader) (usecase.LeagueSheets, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return usecase.LeagueSheets{}, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	return r.read(f)
}

func (r *Reader) read(f *excelize.File) (usecase.LeagueSheets, error) {
	present := make(map[string]struct{})
	for _, name := range f.GetSheetList() {
		present[name] = struct{}{}
	}

	var (
		out usecase.LeagueSheets
		err error
	)
	if _, ok := present[SheetPlayers]; ok {
		if out.Players, err = r.readRoster(f, SheetPlayers, roster.KindPlayers); err != nil {
			return usecase.LeagueSheets{}, err
		}
	}
	if _, ok := present[SheetStandins]; ok {
		if out.Standins, err = r.readRoster(f, SheetStandins, roster.KindStandins); err != nil {
			return usecase.LeagueSheets{}, err
		}
	}
	if _, ok := present[SheetTeams]; ok {
		if out.Teams, err = r.readTeams(f); err != nil {
			return usecase.LeagueSheets{}, err
		}
	}
	if _, ok := present[SheetSchedule]; ok {
		if out.Fixtures, err = r.readSchedule(f); err != nil {
			return usecase.LeagueSheets{}, err
		}
	}
	return out, nil
}

func (r *Reader) readRoster(f *excelize.File, sheet string, kind roster.Kind) ([]roster.Player, error) {
	t, err := loadTable(f, sheet, columnTeam, columnGameNicks, columnPlayer)
	if err != nil {
		return nil, err
	}

	players := make([]roster.Player, 0, len(t.rows))
	for i, row := range t.rows {
		rec := rosterRecord{
			Team:  t.cell(row, columnTeam),
			Nicks: t.cell(row, columnGameNicks),
			Name:  t.cell(row, columnPlayer),
		}
		if err := r.check(sheet, t.line(i), rec); err != nil {
			return nil, err
		}
		players = append(players, roster.Player{
			Kind:     kind,
			Position: len(players),
			Team:     rec.Team,
			Aliases:  roster.ParseAliases(rec.Nicks),
			Name:     rec.Name,
		})
	}
	return players, nil
}

func (r *Reader) readTeams(f *excelize.File) ([]team.Team, error) {
	t, err := loadTable(f, SheetTeams, columnTag, columnName)
	if err != nil {
		return nil, err
	}

	teams := make([]team.Team, 0, len(t.rows))
	for i, row := range t.rows {
		rec := teamRecord{
			Tag:  t.cell(row, columnTag),
			Name: t.cell(row, columnName),
			Logo: t.cell(row, columnLogo),
		}
		if err := r.check(SheetTeams, t.line(i), rec); err != nil {
			return nil, err
		}
		teams = append(teams, team.Team{Tag: rec.Tag, Name: rec.Name, LogoURL: rec.Logo})
	}
	return teams, nil
}

func (r *Reader) readSchedule(f *excelize.File) ([]fixture.Fixture, error) {
	t, err := loadTable(f, SheetSchedule, columnRound, columnTeam1, columnTeam2)
	if err != nil {
		return nil, err
	}

	fixtures := make([]fixture.Fixture, 0, len(t.rows))
	for i, row := range t.rows {
		rec := fixtureRecord{
			Round: t.cell(row, columnRound),
			Team1: t.cell(row, columnTeam1),
			Team2: t.cell(row, columnTeam2),
		}
		if err := r.check(SheetSchedule, t.line(i), rec); err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture.Fixture{
			Position: len(fixtures),
			Round:    rec.Round,
			Team1:    rec.Team1,
			Team2:    rec.Team2,
		})
	}
	return fixtures, nil
}

func (r *Reader) check(sheet string, line int, rec any) error {
	if err := r.validate.Struct(rec); err != nil {
		return errors.Wrapf(usecase.ErrInvalidInput, "sheet %s row %d: %v", sheet, line, err)
	}
	return nil
}

// table is a sheet body with its header resolved to column indexes.
type table struct {
	columns map[string]int
	rows    [][]string
	lines   []int
}

// loadTable reads sheet, requires every named column in the header row and
// drops blank body rows.
func loadTable(f *excelize.File, sheet string, required ...string) (table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return table{}, errors.Wrapf(err, "read sheet %s", sheet)
	}

	t := table{columns: make(map[string]int)}
	if len(rows) > 0 {
		for i, name := range rows[0] {
			name = strings.TrimSpace(name)
			if _, dup := t.columns[name]; name != "" && !dup {
				t.columns[name] = i
			}
		}
	}
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return table{}, errors.Wrapf(usecase.ErrMissingColumn, "sheet %s column %q", sheet, name)
		}
	}

	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		t.rows = append(t.rows, rows[i])
		t.lines = append(t.lines, i+1)
	}
	return t, nil
}

func (t table) cell(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// line is the 1-based sheet row of body row i.
func (t table) line(i int) int {
	return t.lines[i]
}

func blank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
