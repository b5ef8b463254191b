package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const maxJobBodyBytes = 64 << 10

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

type processWeekRequest struct {
	Season     *int  `json:"season"`
	SeasonType *int  `json:"season_type"`
	Week       *int  `json:"week"`
	DryRun     *bool `json:"dry_run"`
}

// RunProcessWeekJob accepts parameters from the query string, a JSON body,
// or both; body values win.
func (h *Handler) RunProcessWeekJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), spanProcessWeekJob)
	defer span.End()

	input, err := h.decodeProcessWeekInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	span.SetAttributes(weekAttributes(input)...)

	out, err := h.runner.ProcessWeek(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "process week job failed",
			"season", input.Season,
			"season_type", input.SeasonType,
			"week", input.Week,
			"error", err,
		)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, out)
}

func (h *Handler) decodeProcessWeekInput(r *http.Request) (usecase.ProcessWeekInput, error) {
	input := usecase.ProcessWeekInput{
		Season:     h.defaults.Season,
		SeasonType: h.defaults.SeasonType,
	}

	query := r.URL.Query()
	var err error
	if input.Season, err = queryInt(query, "season", input.Season); err != nil {
		return input, err
	}
	if input.SeasonType, err = queryInt(query, "season_type", input.SeasonType); err != nil {
		return input, err
	}
	if input.Week, err = queryInt(query, "week", 0); err != nil {
		return input, err
	}
	if raw := strings.TrimSpace(query.Get("dry_run")); raw != "" {
		if input.DryRun, err = strconv.ParseBool(raw); err != nil {
			return input, fmt.Errorf("%w: dry_run must be a boolean", usecase.ErrInvalidInput)
		}
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxJobBodyBytes))
	if err != nil {
		return input, fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return input, nil
	}

	var body processWeekRequest
	if err := strictJSON.Unmarshal(raw, &body); err != nil {
		return input, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if body.Season != nil {
		input.Season = *body.Season
	}
	if body.SeasonType != nil {
		input.SeasonType = *body.SeasonType
	}
	if body.Week != nil {
		input.Week = *body.Week
	}
	if body.DryRun != nil {
		input.DryRun = *body.DryRun
	}
	return input, nil
}

func queryInt(query url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}
