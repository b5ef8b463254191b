package result

import "context"

// Repository persists per-game and per-user weekly results.
type Repository interface {
	UpsertGameResult(ctx context.Context, gr GameResult) error
	// PreviousWeeklyResult returns the user's latest row with week < week.
	PreviousWeeklyResult(ctx context.Context, userID string, week int) (WeeklyResult, bool, error)
	UpsertWeeklyResult(ctx context.Context, wr WeeklyResult) error
	ListWeeklyResultsByWeek(ctx context.Context, week int) ([]WeeklyResult, error)
	LatestWeek(ctx context.Context) (int, bool, error)
}

// SurvivorRepository persists survivor picks and their outcomes.
type SurvivorRepository interface {
	UpsertSurvivorPick(ctx context.Context, sp SurvivorPick) error
	// EliminationWeek returns the first week < beforeWeek the user lost.
	EliminationWeek(ctx context.Context, userID string, beforeWeek int) (int, bool, error)
	ListSurvivorPicks(ctx context.Context) ([]SurvivorPick, error)
}
