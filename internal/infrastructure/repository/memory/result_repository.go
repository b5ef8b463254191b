package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/result"
)

type gameKey struct {
	week   int
	gameID string
}

type userWeekKey struct {
	userID string
	week   int
}

type ResultRepository struct {
	mu     sync.RWMutex
	games  map[gameKey]result.GameResult
	weekly map[userWeekKey]result.WeeklyResult
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		games:  make(map[gameKey]result.GameResult),
		weekly: make(map[userWeekKey]result.WeeklyResult),
	}
}

func (r *ResultRepository) UpsertGameResult(_ context.Context, gr result.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[gameKey{week: gr.Week, gameID: gr.GameID}] = gr
	return nil
}

func (r *ResultRepository) GameResults(week int) []result.GameResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.GameResult, 0)
	for k, v := range r.games {
		if k.week == week {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out
}

func (r *ResultRepository) PreviousWeeklyResult(_ context.Context, userID string, week int) (result.WeeklyResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best result.WeeklyResult
	found := false
	for k, v := range r.weekly {
		if k.userID != userID || k.week >= week {
			continue
		}
		if !found || k.week > best.Week {
			best = v
			found = true
		}
	}
	return best, found, nil
}

func (r *ResultRepository) UpsertWeeklyResult(_ context.Context, wr result.WeeklyResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weekly[userWeekKey{userID: wr.UserID, week: wr.Week}] = wr
	return nil
}

func (r *ResultRepository) ListWeeklyResultsByWeek(_ context.Context, week int) ([]result.WeeklyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.WeeklyResult, 0)
	for k, v := range r.weekly {
		if k.week == week {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *ResultRepository) LatestWeek(_ context.Context) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest := 0
	for k := range r.weekly {
		if k.week > latest {
			latest = k.week
		}
	}
	return latest, latest > 0, nil
}

type SurvivorRepository struct {
	mu    sync.RWMutex
	picks map[userWeekKey]result.SurvivorPick
}

func NewSurvivorRepository(seed ...result.SurvivorPick) *SurvivorRepository {
	picks := make(map[userWeekKey]result.SurvivorPick, len(seed))
	for _, sp := range seed {
		picks[userWeekKey{userID: sp.UserID, week: sp.Week}] = sp
	}
	return &SurvivorRepository{picks: picks}
}

func (r *SurvivorRepository) UpsertSurvivorPick(_ context.Context, sp result.SurvivorPick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.picks[userWeekKey{userID: sp.UserID, week: sp.Week}] = sp
	return nil
}

func (r *SurvivorRepository) EliminationWeek(_ context.Context, userID string, beforeWeek int) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	first := 0
	for k, v := range r.picks {
		if k.userID != userID || k.week >= beforeWeek || v.Result != result.SurvivorLoss {
			continue
		}
		if first == 0 || k.week < first {
			first = k.week
		}
	}
	return first, first > 0, nil
}

func (r *SurvivorRepository) ListSurvivorPicks(_ context.Context) ([]result.SurvivorPick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.SurvivorPick, 0, len(r.picks))
	for _, v := range r.picks {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Week < out[j].Week
	})
	return out, nil
}
