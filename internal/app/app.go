package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/qw-league/internal/config"
	"github.com/riskibarqy/qw-league/internal/infrastructure/hub"
	"github.com/riskibarqy/qw-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/qw-league/internal/observability"
	"github.com/riskibarqy/qw-league/internal/platform/cache"
	idgen "github.com/riskibarqy/qw-league/internal/platform/id"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
	"github.com/riskibarqy/qw-league/internal/usecase"
)

// queryCache is what the query and invalidation paths need from a cache.
type queryCache interface {
	usecase.QueryCache
	usecase.CacheInvalidator
}

type passthroughCache struct{}

func (passthroughCache) GetOrLoad(ctx context.Context, _ string, loader func(context.Context) (any, error)) (any, error) {
	return loader(ctx)
}

func (passthroughCache) DeletePrefix(context.Context, string) {}

// App wires storage, the hub client and the league services. Both the HTTP
// service and the CLI build one.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	metrics *observability.Metrics
	db      *sqlx.DB

	Intake *usecase.IntakeService
	Query  *usecase.QueryService
	Sheets *usecase.SheetService
	Runner *usecase.Runner
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{cfg: cfg, logger: logger}
	if cfg.MetricsEnabled {
		a.metrics = observability.NewMetrics()
	}

	var repos repositories
	switch cfg.StorageDriver {
	case config.StorageMemory:
		repos = newMemoryRepositories(cfg)
	default:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		repos = newPostgresRepositories(db, cfg, logger.Named("postgres"))
	}

	var store queryCache = passthroughCache{}
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	fetcher := hub.NewClient(hub.ClientConfig{
		HTTPClient: &fasthttp.Client{
			Name:                cfg.ServiceName,
			MaxConnsPerHost:     16,
			ReadTimeout:         cfg.HubTimeout,
			WriteTimeout:        cfg.HubTimeout,
			MaxResponseBodySize: 6 << 20,
		},
		GameInfoURL:   cfg.HubGameInfoURL,
		APIKey:        cfg.HubAPIKey,
		Timeout:       cfg.HubTimeout,
		MaxRetries:    cfg.HubMaxRetries,
		RatePerSecond: cfg.HubRatePerSecond,
		RateBurst:     cfg.HubRateBurst,
		CircuitBreaker: hub.CircuitBreakerConfig{
			Enabled:        cfg.HubCircuitEnabled,
			FailureCount:   uint32(cfg.HubCircuitFailureCount),
			OpenTimeout:    cfg.HubCircuitOpenTimeout,
			HalfOpenMaxReq: uint32(cfg.HubCircuitHalfOpenMax),
		},
		Logger: logger.Named("hub"),
	})

	a.Intake = usecase.NewIntakeService(repos.queue, usecase.IntakeConfig{
		URLPrefix:  cfg.HubGameURLPrefix,
		BatchLimit: cfg.IntakeBatchLimit,
	}, logger)
	a.Query = usecase.NewQueryService(repos.teams, repos.fixtures, repos.derived, repos.derived, repos.derived, store)
	a.Sheets = usecase.NewSheetService(
		repos.ledger, repos.rosters, repos.teams, repos.fixtures,
		repos.derived, repos.derived, repos.derived, store, logger,
	)

	var observer usecase.RunObserver
	if a.metrics != nil {
		observer = a.metrics
	}
	runner, err := usecase.NewRunner(
		usecase.NewImportService(repos.queue, repos.ledger, fetcher, logger),
		usecase.NewAggregationService(repos.ledger, repos.rosters, repos.teams, repos.fixtures, repos.derived, store, logger),
		idgen.NewNanoGenerator(),
		observer,
		logger,
	)
	if err != nil {
		a.closeDB()
		return nil, err
	}
	a.Runner = runner

	logger.Info("league app ready",
		"storage", cfg.StorageDriver,
		"queue_capacity", cfg.QueueCapacity,
		"cache_enabled", cfg.CacheEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
	)
	return a, nil
}

// Router builds the HTTP handler chain.
func (a *App) Router() http.Handler {
	routerCfg := httpapi.RouterConfig{
		Logger:             a.logger,
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
	}
	if a.metrics != nil {
		routerCfg.MetricsHandler = a.metrics.Handler()
		routerCfg.Observer = a.metrics
	}

	handler := httpapi.NewHandler(a.Intake, a.Query, a.Runner, a.logger)
	return httpapi.NewRouter(handler, routerCfg)
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      a.Router(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

// Close releases the run pool and the database handle.
func (a *App) Close() {
	if a.Runner != nil {
		a.Runner.Close()
	}
	a.closeDB()
}

func (a *App) closeDB() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
	a.db = nil
}
