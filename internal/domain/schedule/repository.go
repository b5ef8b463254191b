package schedule

import "context"

// Repository exposes the weekly matchups.
type Repository interface {
	ListByWeek(ctx context.Context, week int) ([]Game, error)
}
