package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/importqueue"
	"github.com/riskibarqy/qw-league/internal/domain/qwname"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

var gameIDRegex = regexp.MustCompile(`gameId=(\d+)`)

var errMalformedMatch = errors.New("match does not have exactly two teams")

// MatchFetcher resolves a hub game id into detailed per-player map stats.
type MatchFetcher interface {
	FetchMatch(ctx context.Context, gameID string) (ExternalMatch, error)
}

type ExternalMatch struct {
	Date     string
	Map      string
	Hostname string
	MatchTag string
	Players  []ExternalPlayer
}

type ExternalPlayer struct {
	Name      string
	Team      string
	Frags     int
	Kills     int
	Deaths    int
	Suicides  int
	TeamKills int

	DamageGiven        int
	DamageTaken        int
	DamageEnemyWeapons int
	DamageToDie        int
	DamageSelf         int

	GreenArmor  int
	YellowArmor int
	RedArmor    int
	MegaHealth  int
	Quads       int
	Pents       int
	Rings       int

	SG ExternalWeapon
	LG ExternalWeapon
	RL ExternalWeapon
}

type ExternalWeapon struct {
	Attacks int
	Hits    int
	Taken   int
	Dropped int
	Kills   int
}

type ImportResult struct {
	Pending      int `json:"pending"`
	Imported     int `json:"imported"`
	Duplicates   int `json:"duplicates"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
	Rejected     int `json:"rejected"`
	RowsAppended int `json:"rows_appended"`
}

// ImportService turns staged result URLs into ledger rows.
type ImportService struct {
	queueRepo  importqueue.Repository
	ledgerRepo gamerow.Repository
	fetcher    MatchFetcher
	logger     *logging.Logger
}

func NewImportService(
	queueRepo importqueue.Repository,
	ledgerRepo gamerow.Repository,
	fetcher MatchFetcher,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		queueRepo:  queueRepo,
		ledgerRepo: ledgerRepo,
		fetcher:    fetcher,
		logger:     logger,
	}
}

// HasPending reports whether any queue slot holds a URL.
func (s *ImportService) HasPending(ctx context.Context) (bool, error) {
	queue, err := s.queueRepo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load import queue: %w", err)
	}
	return len(queue.Pending()) > 0, nil
}

// ProcessPending imports every staged URL once. Fetch and storage failures
// leave the slot queued for the next run.
func (s *ImportService) ProcessPending(ctx context.Context) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ProcessPending")
	defer span.End()

	queue, err := s.queueRepo.Load(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("load import queue: %w", err)
	}
	importedURLs, err := s.ledgerRepo.ListImportedURLs(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list imported urls: %w", err)
	}
	imported := make(map[string]struct{}, len(importedURLs))
	for _, url := range importedURLs {
		imported[url] = struct{}{}
	}

	pending := queue.Pending()
	result := ImportResult{Pending: len(pending)}
	for _, slot := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if _, ok := imported[slot.URL]; ok {
			s.consume(ctx, slot)
			result.Duplicates++
			continue
		}

		gameID, ok := parseGameID(slot.URL)
		if !ok {
			s.logger.WarnContext(ctx, "skip result url without game id", "url", slot.URL, "slot", slot.Index)
			result.Skipped++
			continue
		}

		match, err := s.fetcher.FetchMatch(ctx, gameID)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch match failed, url left queued", "url", slot.URL, "game_id", gameID, "error", err)
			result.Failed++
			continue
		}

		rows, err := buildGameRows(slot.URL, match)
		if err != nil {
			s.logger.WarnContext(ctx, "reject malformed match", "url", slot.URL, "game_id", gameID, "error", err)
			s.consume(ctx, slot)
			result.Rejected++
			continue
		}

		if err := s.ledgerRepo.AppendMap(ctx, slot.URL, rows); err != nil {
			s.logger.ErrorContext(ctx, "append ledger rows failed, url left queued", "url", slot.URL, "error", err)
			result.Failed++
			continue
		}
		imported[slot.URL] = struct{}{}
		s.consume(ctx, slot)

		result.Imported++
		result.RowsAppended += len(rows)
		s.logger.InfoContext(ctx, "match imported", "url", slot.URL, "game_id", gameID, "map", match.Map, "rows", len(rows))
	}

	return result, nil
}

// consume clears a processed slot. A failed clear is retried by the dedup
// check on the next run.
func (s *ImportService) consume(ctx context.Context, slot importqueue.Slot) {
	if err := s.queueRepo.Consume(ctx, slot); err != nil {
		s.logger.WarnContext(ctx, "clear queue slot failed", "url", slot.URL, "slot", slot.Index, "error", err)
	}
}

func parseGameID(url string) (string, bool) {
	match := gameIDRegex.FindStringSubmatch(url)
	if len(match) != 2 {
		return "", false
	}
	return match[1], true
}

// buildGameRows normalizes names and derives per-player rates. The team
// with strictly more frags wins; a frag tie leaves every row at mapWon 0.
func buildGameRows(url string, match ExternalMatch) ([]gamerow.GameRow, error) {
	teamFrags := make(map[string]int)
	var teams []string
	for _, p := range match.Players {
		team := qwname.Normalize(p.Team)
		if _, ok := teamFrags[team]; !ok {
			teams = append(teams, team)
		}
		teamFrags[team] += p.Frags
	}
	if len(teams) != 2 {
		return nil, fmt.Errorf("%w: %d teams", errMalformedMatch, len(teams))
	}

	winner := ""
	switch a, b := teamFrags[teams[0]], teamFrags[teams[1]]; {
	case a > b:
		winner = teams[0]
	case b > a:
		winner = teams[1]
	}

	rows := make([]gamerow.GameRow, 0, len(match.Players))
	for _, p := range match.Players {
		team := qwname.Normalize(p.Team)
		mapWon := 0
		if winner != "" && team == winner {
			mapWon = 1
		}
		lgUsed := 0
		if p.LG.Attacks > 0 {
			lgUsed = 1
		}

		rows = append(rows, gamerow.GameRow{
			URL:      url,
			Date:     match.Date,
			Map:      match.Map,
			Server:   match.Hostname,
			MatchTag: match.MatchTag,
			MapWon:   mapWon,
			Frags:    p.Frags,
			Team:     team,
			Player:   qwname.PlayerName(p.Name),

			Efficiency: percent(p.Kills, p.Kills+p.Deaths),
			Kills:      p.Kills,
			Deaths:     p.Deaths,
			Suicides:   p.Suicides,
			TeamKills:  p.TeamKills,

			DamageGiven:        p.DamageGiven,
			DamageTaken:        p.DamageTaken,
			DamageEnemyWeapons: p.DamageEnemyWeapons,
			DamageToDie:        p.DamageToDie,
			DamageSelf:         p.DamageSelf,

			GreenArmor:  p.GreenArmor,
			YellowArmor: p.YellowArmor,
			RedArmor:    p.RedArmor,
			MegaHealth:  p.MegaHealth,

			SGAccuracy: percent(p.SG.Hits, p.SG.Attacks),
			LGUsed:     lgUsed,
			LGAccuracy: percent(p.LG.Hits, p.LG.Attacks),
			RLHits:     p.RL.Hits,
			LGTaken:    p.LG.Taken,
			LGKills:    p.LG.Kills,
			LGDropped:  p.LG.Dropped,
			RLTaken:    p.RL.Taken,
			RLKills:    p.RL.Kills,
			RLDropped:  p.RL.Dropped,

			Quads: p.Quads,
			Pents: p.Pents,
			Rings: p.Rings,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Frags > rows[j].Frags
	})
	return rows, nil
}

// percent is part/whole*100 rounded to two decimals, 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
