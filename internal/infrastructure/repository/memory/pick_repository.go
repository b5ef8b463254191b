package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

type PickRepository struct {
	mu        sync.RWMutex
	byWeek    map[int][]pick.WeeklyPick
	malformed map[int][]pick.MalformedRow
}

func NewPickRepository(rows []pick.WeeklyPick) *PickRepository {
	byWeek := make(map[int][]pick.WeeklyPick)
	for _, row := range rows {
		byWeek[row.Week] = append(byWeek[row.Week], row)
	}
	return &PickRepository{byWeek: byWeek, malformed: make(map[int][]pick.MalformedRow)}
}

// AddMalformed registers a row that ListByWeek reports as undecodable.
func (r *PickRepository) AddMalformed(row pick.MalformedRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.malformed[row.Week] = append(r.malformed[row.Week], row)
}

func (r *PickRepository) ListByWeek(_ context.Context, week int) ([]pick.WeeklyPick, []pick.MalformedRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byWeek[week]
	out := make([]pick.WeeklyPick, 0, len(items))
	out = append(out, items...)
	return out, append([]pick.MalformedRow(nil), r.malformed[week]...), nil
}
