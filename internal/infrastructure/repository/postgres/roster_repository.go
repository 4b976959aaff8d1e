package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/qw-league/internal/domain/roster"
	qb "github.com/riskibarqy/qw-league/internal/platform/querybuilder"
)

type rosterPlayerModel struct {
	Kind     string `db:"kind"`
	Position int    `db:"position"`
	Team     string `db:"team"`
	Aliases  string `db:"aliases"`
	Name     string `db:"name"`
}

func rosterPlayerFromDomain(p roster.Player) rosterPlayerModel {
	return rosterPlayerModel{
		Kind:     string(p.Kind),
		Position: p.Position,
		Team:     p.Team,
		Aliases:  p.AliasText(),
		Name:     p.Name,
	}
}

func (m rosterPlayerModel) domain() roster.Player {
	return roster.Player{
		Kind:     roster.Kind(m.Kind),
		Position: m.Position,
		Team:     m.Team,
		Aliases:  roster.ParseAliases(m.Aliases),
		Name:     m.Name,
	}
}

// RosterRepository stores the roster configuration of both kinds.
type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListPlayers(ctx context.Context, kind roster.Kind) ([]roster.Player, error) {
	query, args, err := qb.Select(qb.Columns[rosterPlayerModel]()...).
		From("roster_players").
		Where(qb.Eq("kind", string(kind))).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster query: %w", err)
	}

	var rows []rosterPlayerModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s roster: %w", kind, err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}

func (r *RosterRepository) ReplacePlayers(ctx context.Context, kind roster.Kind, players []roster.Player) error {
	models := make([]rosterPlayerModel, 0, len(players))
	for i, p := range players {
		p.Kind = kind
		p.Position = i + 1
		models = append(models, rosterPlayerFromDomain(p))
	}

	return inTx(ctx, r.db, "replace roster", func(tx *sqlx.Tx) error {
		if err := clearTable(ctx, tx, "roster_players", qb.Eq("kind", string(kind))); err != nil {
			return err
		}
		return insertChunked(ctx, tx, "roster_players", models)
	})
}
