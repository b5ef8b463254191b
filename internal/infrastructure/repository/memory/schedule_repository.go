package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu          sync.RWMutex
	gamesByWeek map[int][]schedule.Game
}

func NewScheduleRepository(games []schedule.Game) *ScheduleRepository {
	gamesByWeek := make(map[int][]schedule.Game)
	for _, g := range games {
		gamesByWeek[g.Week] = append(gamesByWeek[g.Week], g)
	}
	return &ScheduleRepository{gamesByWeek: gamesByWeek}
}

func (r *ScheduleRepository) ListByWeek(_ context.Context, week int) ([]schedule.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.gamesByWeek[week]
	out := make([]schedule.Game, 0, len(items))
	out = append(out, items...)
	return out, nil
}

// Weeks lists the weeks that have at least one game.
func (r *ScheduleRepository) Weeks() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int, 0, len(r.gamesByWeek))
	for w := range r.gamesByWeek {
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}
