package pick

import "context"

// MalformedRow is a stored submission whose columns could not be decoded.
type MalformedRow struct {
	UserID string
	Week   int
	Err    error
}

// Repository is read-only; the scoring run never mutates picks.
// ListByWeek returns decodable rows and reports undecodable ones separately
// so that the caller can count them without losing the rest of the week.
type Repository interface {
	ListByWeek(ctx context.Context, week int) ([]WeeklyPick, []MalformedRow, error)
}
