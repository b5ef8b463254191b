package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/riskibarqy/pickem-league/internal/domain/result"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

const (
	leaderboardCachePrefix = "board:leaderboard:"
	survivorCacheKey       = "board:survivor"
	boardCachePrefix       = "board:"
)

type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	UserID            string `json:"user_id"`
	ThisWeekScore     int    `json:"this_week_score"`
	PrevWeekScore     int    `json:"prev_week_score"`
	OverallScore      int    `json:"overall_score"`
	TotalDriveBys     int    `json:"total_drive_bys"`
	TotalPointSpreads int    `json:"total_point_spreads"`
	SurvivorResult    string `json:"survivor_result,omitempty"`
}

type Leaderboard struct {
	Week    int                `json:"week"`
	Entries []LeaderboardEntry `json:"entries"`
}

type SurvivorWeek struct {
	Week   int    `json:"week"`
	Team   string `json:"team"`
	Result string `json:"result"`
}

type SurvivorStanding struct {
	UserID         string         `json:"user_id"`
	Alive          bool           `json:"alive"`
	EliminatedWeek int            `json:"eliminated_week,omitempty"`
	Picks          []SurvivorWeek `json:"picks"`
}

// BoardService serves the read side: the weekly leaderboard and the
// survivor pool. Responses are cached until the next completed run.
type BoardService struct {
	results   result.Repository
	survivors result.SurvivorRepository
	cache     *cache.Store
	logger    *logging.Logger
}

func NewBoardService(results result.Repository, survivors result.SurvivorRepository, store *cache.Store, logger *logging.Logger) *BoardService {
	if store == nil {
		store = cache.NewStore(0)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BoardService{results: results, survivors: survivors, cache: store, logger: logger}
}

// Leaderboard ranks users by overall score, then drive-bys, then spreads.
// Week 0 means the latest scored week.
func (s *BoardService) Leaderboard(ctx context.Context, week int) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Leaderboard")
	defer span.End()

	if week < 0 {
		return Leaderboard{}, fmt.Errorf("%w: week must be >= 0", ErrInvalidInput)
	}
	if week == 0 {
		latest, ok, err := s.results.LatestWeek(ctx)
		if err != nil {
			recordSpanError(span, err)
			return Leaderboard{}, fmt.Errorf("resolve latest week: %w", err)
		}
		if !ok {
			return Leaderboard{}, fmt.Errorf("%w: no scored weeks yet", ErrNotFound)
		}
		week = latest
	}

	board, err := cache.Load(ctx, s.cache, leaderboardCachePrefix+strconv.Itoa(week), func(ctx context.Context) (Leaderboard, error) {
		rows, err := s.results.ListWeeklyResultsByWeek(ctx, week)
		if err != nil {
			return Leaderboard{}, fmt.Errorf("list weekly results for week %d: %w", week, err)
		}
		return buildLeaderboard(week, rows), nil
	})
	recordSpanError(span, err)
	return board, err
}

func buildLeaderboard(week int, rows []result.WeeklyResult) Leaderboard {
	sorted := append([]result.WeeklyResult(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		if a.TotalDriveBys != b.TotalDriveBys {
			return a.TotalDriveBys > b.TotalDriveBys
		}
		if a.TotalPointSpreads != b.TotalPointSpreads {
			return a.TotalPointSpreads > b.TotalPointSpreads
		}
		return a.UserID < b.UserID
	})

	entries := make([]LeaderboardEntry, 0, len(sorted))
	for i, r := range sorted {
		rank := i + 1
		if i > 0 {
			prev := sorted[i-1]
			if prev.OverallScore == r.OverallScore && prev.TotalDriveBys == r.TotalDriveBys && prev.TotalPointSpreads == r.TotalPointSpreads {
				rank = entries[i-1].Rank
			}
		}
		entries = append(entries, LeaderboardEntry{
			Rank:              rank,
			UserID:            r.UserID,
			ThisWeekScore:     r.ThisWeekScore,
			PrevWeekScore:     r.PrevWeekScore,
			OverallScore:      r.OverallScore,
			TotalDriveBys:     r.TotalDriveBys,
			TotalPointSpreads: r.TotalPointSpreads,
			SurvivorResult:    string(r.SurvivorResult),
		})
	}
	return Leaderboard{Week: week, Entries: entries}
}

// Survivor lists each user's survivor history. A user is eliminated from
// the first week with a loss onward; alive users sort first.
func (s *BoardService) Survivor(ctx context.Context) ([]SurvivorStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Survivor")
	defer span.End()

	standings, err := cache.Load(ctx, s.cache, survivorCacheKey, func(ctx context.Context) ([]SurvivorStanding, error) {
		picks, err := s.survivors.ListSurvivorPicks(ctx)
		if err != nil {
			return nil, fmt.Errorf("list survivor picks: %w", err)
		}
		return buildSurvivorStandings(picks), nil
	})
	recordSpanError(span, err)
	return standings, err
}

func buildSurvivorStandings(picks []result.SurvivorPick) []SurvivorStanding {
	byUser := make(map[string][]result.SurvivorPick)
	for _, p := range picks {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	out := make([]SurvivorStanding, 0, len(byUser))
	for userID, rows := range byUser {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Week < rows[j].Week })
		standing := SurvivorStanding{UserID: userID, Alive: true, Picks: make([]SurvivorWeek, 0, len(rows))}
		for _, r := range rows {
			standing.Picks = append(standing.Picks, SurvivorWeek{Week: r.Week, Team: r.Team, Result: string(r.Result)})
			if standing.Alive && r.Result == result.SurvivorLoss {
				standing.Alive = false
				standing.EliminatedWeek = r.Week
			}
		}
		out = append(out, standing)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Alive != b.Alive {
			return a.Alive
		}
		if !a.Alive && a.EliminatedWeek != b.EliminatedWeek {
			return a.EliminatedWeek > b.EliminatedWeek
		}
		return a.UserID < b.UserID
	})
	return out
}

// Invalidate drops cached boards. It matches the WeekProcessor hook signature.
func (s *BoardService) Invalidate(ctx context.Context, run ProcessWeekResult) {
	removed := s.cache.DeletePrefix(ctx, boardCachePrefix)
	s.logger.DebugContext(ctx, "board cache invalidated", "week", run.Week, "entries", removed)
}
