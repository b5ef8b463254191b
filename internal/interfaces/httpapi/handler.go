package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// WeekRunner is the write side the job endpoint triggers.
type WeekRunner interface {
	ProcessWeek(ctx context.Context, input usecase.ProcessWeekInput) (usecase.ProcessWeekResult, error)
}

// BoardReader serves the leaderboard and survivor pages.
type BoardReader interface {
	Leaderboard(ctx context.Context, week int) (usecase.Leaderboard, error)
	Survivor(ctx context.Context) ([]usecase.SurvivorStanding, error)
}

// SeasonDefaults fills season fields the job caller leaves out.
type SeasonDefaults struct {
	Season     int
	SeasonType int
}

type Handler struct {
	runner   WeekRunner
	board    BoardReader
	defaults SeasonDefaults
	logger   *logging.Logger
}

func NewHandler(runner WeekRunner, board BoardReader, defaults SeasonDefaults, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		runner:   runner,
		board:    board,
		defaults: defaults,
		logger:   logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
