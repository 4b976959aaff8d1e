package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/qw-league/internal/config"
	"github.com/riskibarqy/qw-league/internal/domain/derived"
	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
	"github.com/riskibarqy/qw-league/internal/domain/importqueue"
	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/team"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
	"github.com/riskibarqy/qw-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/qw-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

// derivedStore is the write side of an aggregation run plus every read view
// over its output.
type derivedStore interface {
	derived.Repository
	playerstats.Repository
	leaguestanding.Repository
	teamgame.Repository
}

type repositories struct {
	queue    importqueue.Repository
	ledger   gamerow.Repository
	rosters  roster.Repository
	teams    team.Repository
	fixtures fixture.Repository
	derived  derivedStore
}

func newMemoryRepositories(cfg config.Config) repositories {
	return repositories{
		queue:    memory.NewQueueRepository(cfg.QueueCapacity),
		ledger:   memory.NewLedgerRepository(nil),
		rosters:  memory.NewRosterRepository(memory.SeedPlayers(), nil),
		teams:    memory.NewTeamRepository(memory.SeedTeams()),
		fixtures: memory.NewFixtureRepository(memory.SeedFixtures()),
		derived:  memory.NewDerivedRepository(),
	}
}

func newPostgresRepositories(db *sqlx.DB, cfg config.Config, logger *logging.Logger) repositories {
	return repositories{
		queue:    postgres.NewQueueRepository(db, cfg.QueueCapacity),
		ledger:   postgres.NewLedgerRepository(db),
		rosters:  postgres.NewRosterRepository(db),
		teams:    postgres.NewTeamRepository(db),
		fixtures: postgres.NewFixtureRepository(db),
		derived:  postgres.NewDerivedRepository(db, logger),
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
