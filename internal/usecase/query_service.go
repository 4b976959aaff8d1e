package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
)

const queryCachePrefix = "query:"

const (
	EndpointStandings    = "standings"
	EndpointPlayers      = "players"
	EndpointStandins     = "standins"
	EndpointTeams        = "teams"
	EndpointGroupGames   = "groupGames"
	EndpointPlayoffGames = "playoffGames"
	EndpointGames        = "games"
	EndpointUnmatched    = "unmatched"
)

// PlayerColumns is the roster sheet column order.
var PlayerColumns = []string{
	"Team", "Game Nicks", "Player", "Total Frags", "Maps Played", "Maps Won",
	"Win Rate", "Avg Frags", "Rank", "Avg Eff", "Avg SG", "Avg LG",
	"Avg RL Taken", "Avg RL Killed", "Avg RL Dropped", "Avg TK", "Avg Bores",
	"Avg Damage", "Avg EWEP", "Avg Quads",
}

var playerPriority = []string{"Rank", "Player", "Avg Frags", "Win Rate", "Avg Eff", "Avg SG", "Avg LG", "Avg RL Killed"}

var playerExcluded = map[string]struct{}{
	"Game Nicks": {},
	"Team":       {},
}

// QueryCache memoizes endpoint results until the next aggregation.
type QueryCache interface {
	GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error)
}

type MapRecord struct {
	MapName    string `json:"mapName"`
	TeamAFrags int    `json:"teamAFrags"`
	TeamBFrags int    `json:"teamBFrags"`
	GameURL    string `json:"gameUrl"`
}

// QueryService serves the read-only views over derived tables.
type QueryService struct {
	teamRepo     team.Repository
	fixtureRepo  fixture.Repository
	statsRepo    playerstats.Repository
	standingRepo leaguestanding.Repository
	gameRepo     teamgame.Repository
	cache        QueryCache
}

func NewQueryService(
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	statsRepo playerstats.Repository,
	standingRepo leaguestanding.Repository,
	gameRepo teamgame.Repository,
	cache QueryCache,
) *QueryService {
	return &QueryService{
		teamRepo:     teamRepo,
		fixtureRepo:  fixtureRepo,
		statsRepo:    statsRepo,
		standingRepo: standingRepo,
		gameRepo:     gameRepo,
		cache:        cache,
	}
}

// Endpoints lists every query kind in a stable order.
func Endpoints() []string {
	return []string{
		EndpointStandings,
		EndpointPlayers,
		EndpointStandins,
		EndpointTeams,
		EndpointGroupGames,
		EndpointPlayoffGames,
		EndpointGames,
		EndpointUnmatched,
	}
}

func (s *QueryService) Query(ctx context.Context, endpoint string) ([]Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.Query")
	defer span.End()

	load, ok := s.loader(endpoint)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}
	if s.cache == nil {
		return load(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, queryCachePrefix+endpoint, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return nil, err
	}
	records, ok := value.([]Record)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value %T for %s", value, endpoint)
	}
	return records, nil
}

func (s *QueryService) loader(endpoint string) (func(context.Context) ([]Record, error), bool) {
	switch endpoint {
	case EndpointStandings:
		return s.standings, true
	case EndpointPlayers:
		return func(ctx context.Context) ([]Record, error) { return s.players(ctx, roster.KindPlayers) }, true
	case EndpointStandins:
		return func(ctx context.Context) ([]Record, error) { return s.players(ctx, roster.KindStandins) }, true
	case EndpointTeams:
		return s.teams, true
	case EndpointGroupGames:
		return func(ctx context.Context) ([]Record, error) { return s.stageGames(ctx, teamgame.StageGroup) }, true
	case EndpointPlayoffGames:
		return func(ctx context.Context) ([]Record, error) { return s.stageGames(ctx, teamgame.StagePlayoff) }, true
	case EndpointGames:
		return s.legacyGames, true
	case EndpointUnmatched:
		return s.unmatched, true
	default:
		return nil, false
	}
}

func (s *QueryService) standings(ctx context.Context) ([]Record, error) {
	items, err := s.standingRepo.ListStandings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, StandingRecord(item))
	}
	return out, nil
}

func (s *QueryService) players(ctx context.Context, kind roster.Kind) ([]Record, error) {
	entries, err := s.statsRepo.ListEntries(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s stats: %w", kind, err)
	}

	out := make([]Record, 0, len(entries))
	for _, entry := range entries {
		out = append(out, orderPlayerRecord(PlayerRecord(entry)))
	}
	return out, nil
}

func (s *QueryService) teams(ctx context.Context) ([]Record, error) {
	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]Record, 0, len(teams))
	for _, item := range teams {
		out = append(out, Record{
			{Key: "Tag", Value: item.Tag},
			{Key: "Name", Value: item.Name},
			{Key: "Logo", Value: item.LogoURL},
		})
	}
	return out, nil
}

func (s *QueryService) unmatched(ctx context.Context) ([]Record, error) {
	nicks, err := s.statsRepo.ListUnmatched(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unmatched nicks: %w", err)
	}

	out := make([]Record, 0, len(nicks))
	for _, nick := range nicks {
		out = append(out, Record{{Key: "Nick", Value: nick}})
	}
	return out, nil
}

func (s *QueryService) stageGames(ctx context.Context, stage teamgame.Stage) ([]Record, error) {
	games, fixtures, dir, err := s.loadSchedule(ctx)
	if err != nil {
		return nil, err
	}
	return entryRecords(teamgame.Reconcile(games, fixtures, dir, stage)), nil
}

func (s *QueryService) legacyGames(ctx context.Context) ([]Record, error) {
	games, fixtures, dir, err := s.loadSchedule(ctx)
	if err != nil {
		return nil, err
	}
	return entryRecords(teamgame.ByRound(games, fixtures, dir)), nil
}

func (s *QueryService) loadSchedule(ctx context.Context) ([]teamgame.Game, []fixture.Fixture, team.Directory, error) {
	games, err := s.gameRepo.ListGames(ctx)
	if err != nil {
		return nil, nil, team.Directory{}, fmt.Errorf("list team games: %w", err)
	}
	fixtures, err := s.fixtureRepo.ListFixtures(ctx)
	if err != nil {
		return nil, nil, team.Directory{}, fmt.Errorf("list fixtures: %w", err)
	}
	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		return nil, nil, team.Directory{}, fmt.Errorf("list teams: %w", err)
	}
	return games, fixtures, team.NewDirectory(teams), nil
}

// StandingRecord renders one standings row.
func StandingRecord(item leaguestanding.Standing) Record {
	return Record{
		{Key: "#", Value: item.Position},
		{Key: "Team", Value: item.TeamName},
		{Key: "Games", Value: item.GamesText()},
		{Key: "Maps", Value: item.MapsText()},
		{Key: "Diff", Value: item.Diff},
	}
}

// PlayerRecord renders one roster row in sheet column order.
func PlayerRecord(entry playerstats.Entry) Record {
	st := entry.Stats
	values := []any{
		entry.Player.Team,
		entry.Player.AliasText(),
		entry.Player.Name,
		st.TotalFrags,
		st.MapsPlayed,
		st.MapsWon,
		playerstats.Percent(st.WinRate),
		playerstats.Whole(st.AvgFrags),
		st.Rank,
		playerstats.Percent(st.AvgEff),
		playerstats.Percent(st.AvgSG),
		playerstats.Percent(st.AvgLG),
		playerstats.Whole(st.AvgRLTaken),
		playerstats.Whole(st.AvgRLKilled),
		playerstats.Whole(st.AvgRLDropped),
		playerstats.Whole(st.AvgTK),
		playerstats.Whole(st.AvgBores),
		playerstats.Whole(st.AvgDamage),
		playerstats.Whole(st.AvgEWEP),
		playerstats.Whole(st.AvgQuads),
	}

	out := make(Record, 0, len(PlayerColumns))
	for i, key := range PlayerColumns {
		out = append(out, Field{Key: key, Value: values[i]})
	}
	return out
}

// orderPlayerRecord puts priority fields first, keeps the rest in sheet
// order and drops excluded fields.
func orderPlayerRecord(full Record) Record {
	out := make(Record, 0, len(full))
	placed := make(map[string]struct{}, len(full))
	for _, key := range playerPriority {
		if value, ok := full.Get(key); ok {
			out = append(out, Field{Key: key, Value: value})
			placed[key] = struct{}{}
		}
	}
	for _, f := range full {
		if _, ok := placed[f.Key]; ok {
			continue
		}
		if _, ok := playerExcluded[f.Key]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

func entryRecords(entries []teamgame.Entry) []Record {
	out := make([]Record, 0, len(entries))
	for _, entry := range entries {
		out = append(out, EntryRecord(entry))
	}
	return out
}

// EntryRecord renders a reconciled fixture. Placeholders carry empty scores.
func EntryRecord(entry teamgame.Entry) Record {
	var wonA, wonB any = "", ""
	played := 0
	if entry.Played {
		wonA, wonB, played = entry.MapsWonA, entry.MapsWonB, 1
	}

	maps := make([]MapRecord, 0, len(entry.Maps))
	for _, m := range entry.Maps {
		maps = append(maps, MapRecord{
			MapName:    m.Name,
			TeamAFrags: m.FragsA,
			TeamBFrags: m.FragsB,
			GameURL:    m.URL,
		})
	}

	return Record{
		{Key: "round", Value: entry.Round},
		{Key: "teamA", Value: entry.TeamA},
		{Key: "teamB", Value: entry.TeamB},
		{Key: "mapsWonA", Value: wonA},
		{Key: "mapsWonB", Value: wonB},
		{Key: "played", Value: played},
		{Key: "maps", Value: maps},
	}
}
