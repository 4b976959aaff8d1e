package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/qw-league/internal/app"
	"github.com/riskibarqy/qw-league/internal/config"
	"github.com/riskibarqy/qw-league/internal/observability"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: logging.FormatJSON, Name: cfg.ServiceName}).
		With("service_version", cfg.ServiceVersion, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("qw-league api stopped with error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	league, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer league.Close()

	srv, err := league.NewHTTPServer()
	if err != nil {
		return err
	}

	var pprofSrv *http.Server
	if cfg.PprofEnabled {
		pprofSrv = observability.NewPprofServer(cfg.PprofAddr)
	}

	serveErr := make(chan error, 1)
	var wg conc.WaitGroup
	wg.Go(func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	})
	if pprofSrv != nil {
		wg.Go(func() { observability.ServePprof(pprofSrv, logger) })
	}
	if cfg.JobProcessInterval > 0 {
		logger.Info("process timer enabled", "interval", cfg.JobProcessInterval.String())
		wg.Go(func() { league.Runner.Schedule(ctx, cfg.JobProcessInterval) })
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := observability.StopPprofServer(pprofSrv, logger, shutdownTimeout); err != nil {
		logger.Warn("pprof shutdown failed", "error", err)
	}
	wg.Wait()
	logger.Info("http server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}
