package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), spanLeaderboard)
	defer span.End()

	week := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("week")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, fmt.Errorf("%w: week must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		week = parsed
	}

	board, err := h.board.Leaderboard(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "week", week, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, board)
}

func (h *Handler) GetSurvivorStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), spanSurvivorStandings)
	defer span.End()

	standings, err := h.board.Survivor(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get survivor standings failed", "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"items": standings})
}
