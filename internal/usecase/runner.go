package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	idgen "github.com/riskibarqy/qw-league/internal/platform/id"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

const (
	JobProcess   = "process"
	JobAggregate = "aggregate"

	runStatusCompleted = "completed"
	runStatusSkipped   = "skipped"
	runStatusFailed    = "failed"
	runStatusRejected  = "rejected"
)

// RunObserver receives run outcomes, typically for metrics.
type RunObserver interface {
	ObserveRun(job, status string, elapsed time.Duration)
	ObserveImport(result ImportResult)
}

type noopRunObserver struct{}

func (noopRunObserver) ObserveRun(string, string, time.Duration) {}
func (noopRunObserver) ObserveImport(ImportResult)               {}

type RunResult struct {
	RunID       string             `json:"run_id"`
	Job         string             `json:"job"`
	Status      string             `json:"status"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Import      *ImportResult      `json:"import,omitempty"`
	Aggregation *AggregationResult `json:"aggregation,omitempty"`
}

// Runner executes import and aggregation runs one at a time. A run is
// detached from the caller's cancellation and always completes.
type Runner struct {
	importSvc    *ImportService
	aggregateSvc *AggregationService
	ids          idgen.Generator
	observer     RunObserver
	logger       *logging.Logger

	gate sync.Mutex
	pool *ants.Pool
	now  func() time.Time
}

func NewRunner(
	importSvc *ImportService,
	aggregateSvc *AggregationService,
	ids idgen.Generator,
	observer RunObserver,
	logger *logging.Logger,
) (*Runner, error) {
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, fmt.Errorf("create run pool: %w", err)
	}
	if ids == nil {
		ids = idgen.NewNanoGenerator()
	}
	if observer == nil {
		observer = noopRunObserver{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Runner{
		importSvc:    importSvc,
		aggregateSvc: aggregateSvc,
		ids:          ids,
		observer:     observer,
		logger:       logger,
		pool:         pool,
		now:          time.Now,
	}, nil
}

func (r *Runner) Close() {
	r.pool.Release()
}

// Process imports staged URLs and re-aggregates. Nothing runs when the
// queue is empty.
func (r *Runner) Process(ctx context.Context) (RunResult, error) {
	return r.exclusive(ctx, JobProcess, func(ctx context.Context, res *RunResult) error {
		pending, err := r.importSvc.HasPending(ctx)
		if err != nil {
			return err
		}
		if !pending {
			res.Status = runStatusSkipped
			return nil
		}

		imported, err := r.importSvc.ProcessPending(ctx)
		res.Import = &imported
		r.observer.ObserveImport(imported)
		if err != nil {
			return fmt.Errorf("process pending urls: %w", err)
		}

		aggregated, err := r.aggregateSvc.Run(ctx)
		if err != nil {
			return err
		}
		res.Aggregation = &aggregated
		return nil
	})
}

// Aggregate re-derives every stats table from the ledger.
func (r *Runner) Aggregate(ctx context.Context) (RunResult, error) {
	return r.exclusive(ctx, JobAggregate, func(ctx context.Context, res *RunResult) error {
		aggregated, err := r.aggregateSvc.Run(ctx)
		if err != nil {
			return err
		}
		res.Aggregation = &aggregated
		return nil
	})
}

// Schedule runs Process every interval until ctx is done. Ticks that find a
// run in progress are skipped.
func (r *Runner) Schedule(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Process(ctx); err != nil {
				r.logger.WarnContext(ctx, "scheduled process run failed", "error", err)
			}
		}
	}
}

func (r *Runner) exclusive(ctx context.Context, job string, fn func(context.Context, *RunResult) error) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Runner."+job)
	defer span.End()

	if !r.gate.TryLock() {
		r.observer.ObserveRun(job, runStatusRejected, 0)
		return RunResult{}, fmt.Errorf("%w: %s", ErrRunInProgress, job)
	}

	runID, err := r.ids.NewID()
	if err != nil {
		r.gate.Unlock()
		return RunResult{}, fmt.Errorf("new run id: %w", err)
	}

	res := RunResult{RunID: runID, Job: job, Status: runStatusCompleted, StartedAt: r.now().UTC()}
	runCtx := context.WithoutCancel(ctx)
	logger := r.logger.With("run_id", runID, "job", job)

	var runErr error
	done := make(chan struct{})
	task := func() {
		defer close(done)
		defer r.gate.Unlock()
		runErr = fn(runCtx, &res)
	}
	if err := r.pool.Submit(task); err != nil {
		r.gate.Unlock()
		return RunResult{}, fmt.Errorf("submit %s run: %w", job, err)
	}
	<-done

	res.FinishedAt = r.now().UTC()
	elapsed := res.FinishedAt.Sub(res.StartedAt)
	if runErr != nil {
		res.Status = runStatusFailed
		r.observer.ObserveRun(job, res.Status, elapsed)
		logger.ErrorContext(ctx, "run failed", "elapsed", elapsed, "error", runErr)
		return res, runErr
	}

	r.observer.ObserveRun(job, res.Status, elapsed)
	logger.InfoContext(ctx, "run finished", "status", res.Status, "elapsed", elapsed)
	return res, nil
}
