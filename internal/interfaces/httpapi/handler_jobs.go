package httpapi

import (
	"errors"
	"net/http"

	"github.com/riskibarqy/qw-league/internal/usecase"
)

// RunProcess imports pending URLs and re-aggregates.
func (h *Handler) RunProcess(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunProcess")
	defer span.End()

	result, err := h.runner.Process(ctx)
	if err != nil {
		h.logJobError(r, usecase.JobProcess, result.RunID, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// RunAggregate re-derives the stats tables from the ledger.
func (h *Handler) RunAggregate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAggregate")
	defer span.End()

	result, err := h.runner.Aggregate(ctx)
	if err != nil {
		h.logJobError(r, usecase.JobAggregate, result.RunID, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) logJobError(r *http.Request, job, runID string, err error) {
	if errors.Is(err, usecase.ErrRunInProgress) {
		h.logger.InfoContext(r.Context(), "job rejected, run in progress", "job", job)
		return
	}
	h.logger.ErrorContext(r.Context(), "job failed", "job", job, "run_id", runID, "error", err)
}
