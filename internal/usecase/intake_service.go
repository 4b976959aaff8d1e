package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/qw-league/internal/domain/importqueue"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

const (
	DefaultGameURLPrefix    = "https://hub.quakeworld.nu/games/?gameId="
	DefaultIntakeBatchLimit = 10
)

type IntakeConfig struct {
	URLPrefix  string
	BatchLimit int
}

type IntakeResult struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Dropped  int `json:"dropped"`
}

// IntakeService stages result URLs for the next import run.
type IntakeService struct {
	queueRepo importqueue.Repository
	cfg       IntakeConfig
	logger    *logging.Logger
}

func NewIntakeService(queueRepo importqueue.Repository, cfg IntakeConfig, logger *logging.Logger) *IntakeService {
	if strings.TrimSpace(cfg.URLPrefix) == "" {
		cfg.URLPrefix = DefaultGameURLPrefix
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = DefaultIntakeBatchLimit
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &IntakeService{
		queueRepo: queueRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

// Enqueue keeps URLs carrying the hub prefix, caps them at the batch limit
// and writes them into the queue. A full queue writes nothing.
func (s *IntakeService) Enqueue(ctx context.Context, urls []string) (IntakeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntakeService.Enqueue")
	defer span.End()

	var result IntakeResult
	accepted := make([]string, 0, s.cfg.BatchLimit)
	for _, raw := range urls {
		url := strings.TrimSpace(raw)
		if !strings.HasPrefix(url, s.cfg.URLPrefix) {
			result.Rejected++
			continue
		}
		if len(accepted) == s.cfg.BatchLimit {
			result.Dropped++
			continue
		}
		accepted = append(accepted, url)
	}
	if len(accepted) == 0 {
		return result, nil
	}

	slots, err := s.queueRepo.Enqueue(ctx, accepted)
	if err != nil {
		return IntakeResult{}, fmt.Errorf("enqueue %d urls: %w", len(accepted), err)
	}
	result.Accepted = len(slots)

	s.logger.InfoContext(ctx, "result urls staged",
		"accepted", result.Accepted,
		"rejected", result.Rejected,
		"dropped", result.Dropped,
	)
	return result, nil
}
