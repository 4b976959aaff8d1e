package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	qb "github.com/riskibarqy/qw-league/internal/platform/querybuilder"
)

type teamModel struct {
	Position int    `db:"position"`
	Tag      string `db:"tag"`
	Name     string `db:"name"`
	LogoURL  string `db:"logo_url"`
}

type fixtureModel struct {
	Position int    `db:"position"`
	Round    string `db:"round"`
	Team1    string `db:"team1"`
	Team2    string `db:"team2"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListTeams(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(qb.Columns[teamModel]()...).From("teams").OrderBy("position").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{Tag: row.Tag, Name: row.Name, LogoURL: row.LogoURL})
	}
	return out, nil
}

func (r *TeamRepository) ReplaceTeams(ctx context.Context, teams []team.Team) error {
	models := make([]teamModel, 0, len(teams))
	for i, item := range teams {
		models = append(models, teamModel{Position: i + 1, Tag: item.Tag, Name: item.Name, LogoURL: item.LogoURL})
	}

	return inTx(ctx, r.db, "replace teams", func(tx *sqlx.Tx) error {
		if err := clearTable(ctx, tx, "teams"); err != nil {
			return err
		}
		return insertChunked(ctx, tx, "teams", models)
	})
}

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(qb.Columns[fixtureModel]()...).From("fixtures").OrderBy("position").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	var rows []fixtureModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture(row))
	}
	return out, nil
}

func (r *FixtureRepository) ReplaceFixtures(ctx context.Context, fixtures []fixture.Fixture) error {
	models := make([]fixtureModel, 0, len(fixtures))
	for i, item := range fixtures {
		item.Position = i + 1
		models = append(models, fixtureModel(item))
	}

	return inTx(ctx, r.db, "replace fixtures", func(tx *sqlx.Tx) error {
		if err := clearTable(ctx, tx, "fixtures"); err != nil {
			return err
		}
		return insertChunked(ctx, tx, "fixtures", models)
	})
}
