package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/qw-league/internal/domain/derived"
	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

// CacheInvalidator drops cached query results after derived tables change.
type CacheInvalidator interface {
	DeletePrefix(ctx context.Context, prefix string)
}

type AggregationResult struct {
	Rows      int `json:"rows"`
	Players   int `json:"players"`
	Standins  int `json:"standins"`
	Unmatched int `json:"unmatched"`
	Teams     int `json:"teams"`
	Games     int `json:"games"`
	Malformed int `json:"malformed"`
}

// AggregationService re-derives every stats table from the full ledger.
type AggregationService struct {
	ledgerRepo  gamerow.Repository
	rosterRepo  roster.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	derivedRepo derived.Repository
	cache       CacheInvalidator
	logger      *logging.Logger
}

func NewAggregationService(
	ledgerRepo gamerow.Repository,
	rosterRepo roster.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	derivedRepo derived.Repository,
	cache CacheInvalidator,
	logger *logging.Logger,
) *AggregationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AggregationService{
		ledgerRepo:  ledgerRepo,
		rosterRepo:  rosterRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		derivedRepo: derivedRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Run reads one snapshot of every source table, derives player stats and
// standings, and replaces the derived tables in one write. Every read
// happens before the write, so a failed read leaves previous output intact.
func (s *AggregationService) Run(ctx context.Context) (AggregationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.Run")
	defer span.End()

	rows, err := s.ledgerRepo.ListRows(ctx)
	if err != nil {
		return AggregationResult{}, fmt.Errorf("list ledger rows: %w", err)
	}
	players, err := s.rosterRepo.ListPlayers(ctx, roster.KindPlayers)
	if err != nil {
		return AggregationResult{}, fmt.Errorf("list players roster: %w", err)
	}
	standins, err := s.rosterRepo.ListPlayers(ctx, roster.KindStandins)
	if err != nil {
		return AggregationResult{}, fmt.Errorf("list standins roster: %w", err)
	}
	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		return AggregationResult{}, fmt.Errorf("list teams: %w", err)
	}
	fixtures, err := s.fixtureRepo.ListFixtures(ctx)
	if err != nil {
		return AggregationResult{}, fmt.Errorf("list fixtures: %w", err)
	}

	stats, err := playerstats.Derive(rows, players, standins)
	if err != nil {
		return AggregationResult{}, fmt.Errorf("derive player stats: %w", err)
	}
	standings := leaguestanding.Derive(rows, team.NewDirectory(teams), fixtures)
	for _, item := range standings.Malformed {
		s.logger.WarnContext(ctx, "skip malformed "+item.Kind, "key", item.Key, "teams", item.Teams)
	}

	snapshot := derived.Snapshot{
		Players:   stats.Players,
		Standins:  stats.Standins,
		Unmatched: stats.Unmatched,
		Standings: standings.Standings,
		Games:     standings.Games,
		MaxMaps:   standings.MaxMaps,
	}
	if err := s.derivedRepo.ReplaceSnapshot(ctx, snapshot); err != nil {
		return AggregationResult{}, fmt.Errorf("replace derived tables: %w", err)
	}
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, queryCachePrefix)
	}

	result := AggregationResult{
		Rows:      len(rows),
		Players:   len(stats.Players),
		Standins:  len(stats.Standins),
		Unmatched: len(stats.Unmatched),
		Teams:     len(standings.Standings),
		Games:     len(standings.Games),
		Malformed: len(standings.Malformed),
	}
	s.logger.InfoContext(ctx, "aggregation completed",
		"rows", result.Rows,
		"players", result.Players,
		"standins", result.Standins,
		"unmatched", result.Unmatched,
		"teams", result.Teams,
		"games", result.Games,
	)
	return result, nil
}
