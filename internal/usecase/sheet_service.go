package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

// LeagueSheets holds the admin-maintained source tables. A nil slice means
// the sheet was absent and the stored table is left alone.
type LeagueSheets struct {
	Players  []roster.Player
	Standins []roster.Player
	Teams    []team.Team
	Fixtures []fixture.Fixture
}

// LeagueExport is every table a workbook export writes.
type LeagueExport struct {
	Rows         []gamerow.GameRow
	ImportedURLs []string
	Players      []playerstats.Entry
	Standins     []playerstats.Entry
	Unmatched    []string
	Standings    []leaguestanding.Standing
	Games        []teamgame.Game
}

type SheetLoadResult struct {
	Players  int `json:"players"`
	Standins int `json:"standins"`
	Teams    int `json:"teams"`
	Fixtures int `json:"fixtures"`
}

// SheetService loads source tables and gathers export snapshots.
type SheetService struct {
	ledgerRepo   gamerow.Repository
	rosterRepo   roster.Repository
	teamRepo     team.Repository
	fixtureRepo  fixture.Repository
	statsRepo    playerstats.Repository
	standingRepo leaguestanding.Repository
	gameRepo     teamgame.Repository
	cache        CacheInvalidator
	logger       *logging.Logger
}

func NewSheetService(
	ledgerRepo gamerow.Repository,
	rosterRepo roster.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	statsRepo playerstats.Repository,
	standingRepo leaguestanding.Repository,
	gameRepo teamgame.Repository,
	cache CacheInvalidator,
	logger *logging.Logger,
) *SheetService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SheetService{
		ledgerRepo:   ledgerRepo,
		rosterRepo:   rosterRepo,
		teamRepo:     teamRepo,
		fixtureRepo:  fixtureRepo,
		statsRepo:    statsRepo,
		standingRepo: standingRepo,
		gameRepo:     gameRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Load replaces every present source table. Aliases are checked against
// the combined rosters before anything is written.
func (s *SheetService) Load(ctx context.Context, sheets LeagueSheets) (SheetLoadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.Load")
	defer span.End()

	if sheets.Players != nil || sheets.Standins != nil {
		players, err := s.effectiveRoster(ctx, roster.KindPlayers, sheets.Players)
		if err != nil {
			return SheetLoadResult{}, err
		}
		standins, err := s.effectiveRoster(ctx, roster.KindStandins, sheets.Standins)
		if err != nil {
			return SheetLoadResult{}, err
		}
		if err := roster.ValidateAliases(players, standins); err != nil {
			return SheetLoadResult{}, err
		}
	}
	for i := range sheets.Teams {
		if err := sheets.Teams[i].Validate(); err != nil {
			return SheetLoadResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	var result SheetLoadResult
	if sheets.Players != nil {
		if err := s.rosterRepo.ReplacePlayers(ctx, roster.KindPlayers, positioned(sheets.Players, roster.KindPlayers)); err != nil {
			return result, fmt.Errorf("replace players roster: %w", err)
		}
		result.Players = len(sheets.Players)
	}
	if sheets.Standins != nil {
		if err := s.rosterRepo.ReplacePlayers(ctx, roster.KindStandins, positioned(sheets.Standins, roster.KindStandins)); err != nil {
			return result, fmt.Errorf("replace standins roster: %w", err)
		}
		result.Standins = len(sheets.Standins)
	}
	if sheets.Teams != nil {
		if err := s.teamRepo.ReplaceTeams(ctx, sheets.Teams); err != nil {
			return result, fmt.Errorf("replace teams: %w", err)
		}
		result.Teams = len(sheets.Teams)
	}
	if sheets.Fixtures != nil {
		fixtures := make([]fixture.Fixture, len(sheets.Fixtures))
		for i, item := range sheets.Fixtures {
			item.Position = i
			fixtures[i] = item
		}
		if err := s.fixtureRepo.ReplaceFixtures(ctx, fixtures); err != nil {
			return result, fmt.Errorf("replace fixtures: %w", err)
		}
		result.Fixtures = len(fixtures)
	}

	// Teams and groupGames read the source tables directly.
	if s.cache != nil && (sheets.Teams != nil || sheets.Fixtures != nil) {
		s.cache.DeletePrefix(ctx, queryCachePrefix)
	}
	s.logger.InfoContext(ctx, "source sheets loaded",
		"players", result.Players,
		"standins", result.Standins,
		"teams", result.Teams,
		"fixtures", result.Fixtures,
	)
	return result, nil
}

func (s *SheetService) effectiveRoster(ctx context.Context, kind roster.Kind, loaded []roster.Player) ([]roster.Player, error) {
	if loaded != nil {
		return loaded, nil
	}
	current, err := s.rosterRepo.ListPlayers(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s roster: %w", kind, err)
	}
	return current, nil
}

func positioned(players []roster.Player, kind roster.Kind) []roster.Player {
	out := make([]roster.Player, len(players))
	for i, p := range players {
		p.Kind = kind
		p.Position = i
		out[i] = p
	}
	return out
}

// Export reads the ledger and every derived table.
func (s *SheetService) Export(ctx context.Context) (LeagueExport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.Export")
	defer span.End()

	var (
		out LeagueExport
		err error
	)
	if out.Rows, err = s.ledgerRepo.ListRows(ctx); err != nil {
		return LeagueExport{}, fmt.Errorf("list ledger rows: %w", err)
	}
	if out.ImportedURLs, err = s.ledgerRepo.ListImportedURLs(ctx); err != nil {
		return LeagueExport{}, fmt.Errorf("list imported urls: %w", err)
	}
	if out.Players, err = s.statsRepo.ListEntries(ctx, roster.KindPlayers); err != nil {
		return LeagueExport{}, fmt.Errorf("list player stats: %w", err)
	}
	if out.Standins, err = s.statsRepo.ListEntries(ctx, roster.KindStandins); err != nil {
		return LeagueExport{}, fmt.Errorf("list standin stats: %w", err)
	}
	if out.Unmatched, err = s.statsRepo.ListUnmatched(ctx); err != nil {
		return LeagueExport{}, fmt.Errorf("list unmatched nicks: %w", err)
	}
	if out.Standings, err = s.standingRepo.ListStandings(ctx); err != nil {
		return LeagueExport{}, fmt.Errorf("list standings: %w", err)
	}
	if out.Games, err = s.gameRepo.ListGames(ctx); err != nil {
		return LeagueExport{}, fmt.Errorf("list team games: %w", err)
	}
	return out, nil
}
