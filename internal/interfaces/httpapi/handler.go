package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/qw-league/internal/platform/logging"
	"github.com/riskibarqy/qw-league/internal/usecase"
)

const maxIntakeBodyBytes = 1 << 20

type Handler struct {
	intakeService *usecase.IntakeService
	queryService  *usecase.QueryService
	runner        *usecase.Runner
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	intakeService *usecase.IntakeService,
	queryService *usecase.QueryService,
	runner *usecase.Runner,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		intakeService: intakeService,
		queryService:  queryService,
		runner:        runner,
		logger:        logger,
		validator:     validator.New(),
	}
}

type intakeRequest struct {
	URLs []any `json:"urls" validate:"required"`
}

// urls returns the array as strings. Non-string entries become empty and are
// rejected by the prefix check.
func (req intakeRequest) urls() []string {
	out := make([]string, len(req.URLs))
	for i, v := range req.URLs {
		if s, ok := v.(string); ok {
			out[i] = s
		}
	}
	return out
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Intake stages hub result URLs for the next import run.
func (h *Handler) Intake(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Intake")
	defer span.End()

	var req intakeRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.intakeService.Enqueue(ctx, req.urls())
	if err != nil {
		h.logger.WarnContext(ctx, "intake failed", "urls", len(req.URLs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// Query serves one read-only view as a bare record array. Unknown kinds
// answer 200 with an error object.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Query")
	defer span.End()

	endpoint := strings.TrimSpace(r.URL.Query().Get("endpoint"))
	records, err := h.queryService.Query(ctx, endpoint)
	if errors.Is(err, usecase.ErrUnknownEndpoint) {
		writeJSON(ctx, w, http.StatusOK, map[string]string{"error": "Unknown endpoint"})
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "query failed", "endpoint", endpoint, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, records)
}

func (h *Handler) decodeJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIntakeBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: malformed json: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, dst); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
