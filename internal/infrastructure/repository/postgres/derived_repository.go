package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/qw-league/internal/domain/derived"
	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
	qb "github.com/riskibarqy/qw-league/internal/platform/querybuilder"
)

// DerivedRepository owns every table an aggregation run rewrites.
type DerivedRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewDerivedRepository(db *sqlx.DB, logger *logging.Logger) *DerivedRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &DerivedRepository{db: db, logger: logger}
}

// ReplaceSnapshot clears and rewrites all derived tables in one transaction.
func (r *DerivedRepository) ReplaceSnapshot(ctx context.Context, snapshot derived.Snapshot) error {
	games := make([]teamGameModel, 0, len(snapshot.Games))
	for i, g := range snapshot.Games {
		g.Position = i + 1
		model, err := teamGameFromDomain(g)
		if err != nil {
			return fmt.Errorf("encode maps of game %s: %w", g.Key, err)
		}
		games = append(games, model)
	}

	standings := make([]standingModel, 0, len(snapshot.Standings))
	for _, s := range snapshot.Standings {
		standings = append(standings, standingFromDomain(s))
	}

	unmatched := make([]unmatchedModel, 0, len(snapshot.Unmatched))
	for i, nick := range snapshot.Unmatched {
		unmatched = append(unmatched, unmatchedModel{Position: i + 1, Nick: nick})
	}

	return inTx(ctx, r.db, "replace derived tables", func(tx *sqlx.Tx) error {
		for _, table := range []string{"player_stats", "unmatched_nicks", "standings", "team_games"} {
			if err := clearTable(ctx, tx, table); err != nil {
				return err
			}
		}

		if err := r.insertPlayerStats(ctx, tx, roster.KindPlayers, snapshot.Players); err != nil {
			return err
		}
		if err := r.insertPlayerStats(ctx, tx, roster.KindStandins, snapshot.Standins); err != nil {
			return err
		}
		if err := insertChunked(ctx, tx, "unmatched_nicks", unmatched); err != nil {
			return err
		}
		if err := insertChunked(ctx, tx, "standings", standings); err != nil {
			return err
		}
		return insertChunked(ctx, tx, "team_games", games)
	})
}

func (r *DerivedRepository) insertPlayerStats(ctx context.Context, tx *sqlx.Tx, kind roster.Kind, entries []playerstats.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	size := maxBindParams / len(playerStatsColumns)
	for start := 0; start < len(entries); start += size {
		end := min(start+size, len(entries))
		b := qb.InsertInto("player_stats").Columns(playerStatsColumns...)
		for _, entry := range entries[start:end] {
			b.Values(playerStatsRow(playerStatsFromDomain(kind, entry))...)
		}
		if err := execBuilt(ctx, tx, "insert "+string(kind)+" stats", b.ToSQL); err != nil {
			return err
		}
	}
	return nil
}

func (r *DerivedRepository) ListEntries(ctx context.Context, kind roster.Kind) ([]playerstats.Entry, error) {
	query, args, err := qb.Select(playerStatsColumns...).
		From("player_stats").
		Where(qb.Eq("kind", string(kind))).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player stats query: %w", err)
	}

	var rows []playerStatsModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s stats: %w", kind, err)
	}

	out := make([]playerstats.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}

func (r *DerivedRepository) ListUnmatched(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("nick").From("unmatched_nicks").OrderBy("position").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list unmatched nicks query: %w", err)
	}

	var nicks []string
	if err := r.db.SelectContext(ctx, &nicks, query, args...); err != nil {
		return nil, fmt.Errorf("list unmatched nicks: %w", err)
	}
	return nicks, nil
}

func (r *DerivedRepository) ListStandings(ctx context.Context) ([]leaguestanding.Standing, error) {
	query, args, err := qb.Select(qb.Columns[standingModel]()...).From("standings").OrderBy("position").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]leaguestanding.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}

// ListGames returns the team games log. A game whose maps column does not
// decode is kept with no maps.
func (r *DerivedRepository) ListGames(ctx context.Context) ([]teamgame.Game, error) {
	query, args, err := qb.Select(qb.Columns[teamGameModel]()...).From("team_games").OrderBy("position").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team games query: %w", err)
	}

	var rows []teamGameModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team games: %w", err)
	}

	out := make([]teamgame.Game, 0, len(rows))
	for _, row := range rows {
		game, err := row.domain()
		if err != nil {
			r.logger.WarnContext(ctx, "malformed maps column, using empty map list", "game_key", row.Key, "error", err)
		}
		out = append(out, game)
	}
	return out, nil
}
