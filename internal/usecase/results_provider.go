package usecase

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/domain/result"
)

type WeekResultsRequest struct {
	Season     int
	SeasonType int
	Week       int
}

// ResultsProvider reads one week of game results from the third-party
// feed. A transport or status failure is returned as *FetchError; a payload
// it cannot make sense of yields zero results and no error.
type ResultsProvider interface {
	FetchWeekResults(ctx context.Context, req WeekResultsRequest) ([]result.ExternalResult, error)
}
