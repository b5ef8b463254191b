package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/result"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/domain/scoring"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultScoringWorkers = 8
	maxFailureDetails     = 50

	userStatusWritten = "written"
	userStatusDryRun  = "dry_run"
	userStatusFailed  = "failed"
)

type ProcessWeekInput struct {
	Season     int  `json:"season" validate:"gte=1990,lte=2100"`
	SeasonType int  `json:"season_type" validate:"oneof=1 2 3"`
	Week       int  `json:"week" validate:"gte=1,lte=25"`
	DryRun     bool `json:"dry_run"`
}

type ProcessWeekResult struct {
	Season               int               `json:"season"`
	SeasonType           int               `json:"season_type"`
	Week                 int               `json:"week"`
	DryRun               bool              `json:"dry_run"`
	EventsFetched        int               `json:"events_fetched"`
	GamesScheduled       int               `json:"games_scheduled"`
	GamesMatched         int               `json:"games_matched"`
	GamesNotStarted      int               `json:"games_not_started"`
	UnmatchedEvents      int               `json:"unmatched_events"`
	GameResultsWritten   int               `json:"game_results_written"`
	UsersScored          int               `json:"users_scored"`
	WeeklyResultsWritten int               `json:"weekly_results_written"`
	SurvivorResolved     int               `json:"survivor_resolved"`
	SurvivorEliminated   int               `json:"survivor_eliminated"`
	SkippedPicks         int               `json:"skipped_picks"`
	Failures             int               `json:"failures"`
	FailureDetails       []string          `json:"failure_details,omitempty"`
	Users                []UserWeekSummary `json:"users"`
	DurationMs           int64             `json:"duration_ms"`
}

type UserWeekSummary struct {
	UserID         string `json:"user_id"`
	Status         string `json:"status"`
	StraightWins   int    `json:"straight_wins"`
	DriveByWins    int    `json:"drive_by_wins"`
	SpreadWins     int    `json:"spread_wins"`
	OverallScore   int    `json:"overall_score"`
	Survivor       string `json:"survivor,omitempty"`
	EliminatedWeek int    `json:"eliminated_week,omitempty"`
	SkippedPicks   int    `json:"skipped_picks"`
}

type WeekProcessorConfig struct {
	MaxWorkers int
}

// WeekProcessor runs the weekly scoring pipeline: fetch provider results,
// join them to the local schedule, score every user's picks and persist
// game results, cumulative weekly results and survivor outcomes.
type WeekProcessor struct {
	provider   ResultsProvider
	schedule   schedule.Repository
	picks      pick.Repository
	results    result.Repository
	survivors  result.SurvivorRepository
	logger     *logging.Logger
	validate   *validator.Validate
	maxWorkers int
	now        func() time.Time

	flight     resilience.Group[ProcessWeekResult]
	hooksMu    sync.RWMutex
	onComplete []func(context.Context, ProcessWeekResult)
}

func NewWeekProcessor(
	provider ResultsProvider,
	scheduleRepo schedule.Repository,
	pickRepo pick.Repository,
	resultRepo result.Repository,
	survivorRepo result.SurvivorRepository,
	logger *logging.Logger,
	cfg WeekProcessorConfig,
) *WeekProcessor {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.MaxWorkers
	if workers < 1 {
		workers = defaultScoringWorkers
	}
	return &WeekProcessor{
		provider:   provider,
		schedule:   scheduleRepo,
		picks:      pickRepo,
		results:    resultRepo,
		survivors:  survivorRepo,
		logger:     logger,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		maxWorkers: workers,
		now:        time.Now,
	}
}

// OnComplete registers a hook that runs after every successful non-dry run.
func (p *WeekProcessor) OnComplete(fn func(context.Context, ProcessWeekResult)) {
	if fn == nil {
		return
	}
	p.hooksMu.Lock()
	p.onComplete = append(p.onComplete, fn)
	p.hooksMu.Unlock()
}

// ProcessWeek scores one week. Concurrent calls for the same season, type
// and week share a single run. Only invalid input, a provider failure or
// an unreadable schedule/picks table fail the run; row-level problems are
// counted in the result.
func (p *WeekProcessor) ProcessWeek(ctx context.Context, input ProcessWeekInput) (ProcessWeekResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekProcessor.ProcessWeek", weekAttrs(input.Season, input.SeasonType, input.Week)...)
	defer span.End()

	if err := p.validate.StructCtx(ctx, input); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidInput, err)
		recordSpanError(span, err)
		return ProcessWeekResult{}, err
	}

	key := fmt.Sprintf("%d:%d:%d:%t", input.Season, input.SeasonType, input.Week, input.DryRun)
	out, err, shared := p.flight.Do(key, func() (ProcessWeekResult, error) {
		return p.run(ctx, input)
	})
	if shared {
		p.logger.InfoContext(ctx, "joined in-flight week run", "key", key)
	}
	recordSpanError(span, err)
	return out, err
}

func (p *WeekProcessor) run(ctx context.Context, input ProcessWeekInput) (ProcessWeekResult, error) {
	started := p.now()
	out := ProcessWeekResult{
		Season:     input.Season,
		SeasonType: input.SeasonType,
		Week:       input.Week,
		DryRun:     input.DryRun,
		Users:      []UserWeekSummary{},
	}
	logger := p.logger.With(
		"season", input.Season,
		"season_type", input.SeasonType,
		"week", input.Week,
		"dry_run", input.DryRun,
	)

	events, err := p.provider.FetchWeekResults(ctx, WeekResultsRequest{
		Season:     input.Season,
		SeasonType: input.SeasonType,
		Week:       input.Week,
	})
	if err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			err = &FetchError{Season: input.Season, SeasonType: input.SeasonType, Week: input.Week, Err: err}
		}
		logger.ErrorContext(ctx, "fetch week results failed", "error", err)
		return out, err
	}
	out.EventsFetched = len(events)
	if len(events) == 0 {
		logger.WarnContext(ctx, "provider returned no events for week")
	}

	games, err := p.schedule.ListByWeek(ctx, input.Week)
	if err != nil {
		return out, fmt.Errorf("list schedule for week %d: %w", input.Week, err)
	}
	if err := schedule.ValidateWeek(input.Week, games); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	out.GamesScheduled = len(games)

	now := p.now()
	for _, g := range games {
		if g.IsOpenForPicks(now) {
			out.GamesNotStarted++
		}
	}

	board := scoring.NewBoard(input.Week, games, events)
	out.GamesMatched = board.Matched()
	out.UnmatchedEvents = len(board.Unmatched())
	for _, ev := range board.Unmatched() {
		logger.WarnContext(ctx, "provider event skipped",
			"event_id", ev.EventID,
			"home_team", ev.HomeTeam,
			"away_team", ev.AwayTeam,
			"error", ErrUnjoinableGame,
		)
	}

	failures := &failureLog{}
	out.GameResultsWritten = p.writeGameResults(ctx, logger, board, input.DryRun, failures)

	rows, malformed, err := p.picks.ListByWeek(ctx, input.Week)
	if err != nil {
		return out, fmt.Errorf("list picks for week %d: %w", input.Week, err)
	}

	users, err := p.scoreUsers(ctx, logger, board, rows, input, failures)
	if err != nil {
		return out, err
	}
	if len(malformed) > 0 {
		users = append(users, malformedSummaries(ctx, logger, malformed, failures)...)
		sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	}
	for _, u := range users {
		out.SkippedPicks += u.SkippedPicks
		if u.Status != userStatusFailed {
			out.UsersScored++
		}
		if u.Status == userStatusWritten {
			out.WeeklyResultsWritten++
		}
		if u.Survivor == string(result.SurvivorWin) || u.Survivor == string(result.SurvivorLoss) {
			out.SurvivorResolved++
		}
		if u.EliminatedWeek > 0 {
			out.SurvivorEliminated++
		}
	}
	out.Users = users
	out.Failures, out.FailureDetails = failures.snapshot()
	out.DurationMs = p.now().Sub(started).Milliseconds()

	logger.InfoContext(ctx, "week processed",
		"events_fetched", out.EventsFetched,
		"games_matched", out.GamesMatched,
		"games_not_started", out.GamesNotStarted,
		"unmatched_events", out.UnmatchedEvents,
		"game_results_written", out.GameResultsWritten,
		"users_scored", out.UsersScored,
		"weekly_results_written", out.WeeklyResultsWritten,
		"survivor_resolved", out.SurvivorResolved,
		"skipped_picks", out.SkippedPicks,
		"failures", out.Failures,
		"duration_ms", out.DurationMs,
	)

	if !input.DryRun {
		p.notify(ctx, out)
	}
	return out, nil
}

func (p *WeekProcessor) writeGameResults(
	ctx context.Context,
	logger *logging.Logger,
	board *scoring.Board,
	dryRun bool,
	failures *failureLog,
) int {
	rows := board.GameResults()
	if dryRun {
		for _, gr := range rows {
			logger.DebugContext(ctx, "dry run game result",
				"game_id", gr.GameID,
				"winner", gr.Winner,
				"correct_spread", gr.CorrectSpread,
				"home_score", gr.HomeScore,
				"away_score", gr.AwayScore,
			)
		}
		return 0
	}

	var written atomic.Int32
	wp := pool.New().WithMaxGoroutines(p.maxWorkers)
	for _, gr := range rows {
		wp.Go(func() {
			if err := p.results.UpsertGameResult(ctx, gr); err != nil {
				err = persistenceError("game_result", fmt.Sprintf("%d/%s", gr.Week, gr.GameID), err)
				failures.add(err)
				logger.WarnContext(ctx, "upsert game result failed", "game_id", gr.GameID, "error", err)
				return
			}
			written.Add(1)
		})
	}
	wp.Wait()
	return int(written.Load())
}

func (p *WeekProcessor) scoreUsers(
	ctx context.Context,
	logger *logging.Logger,
	board *scoring.Board,
	rows []pick.WeeklyPick,
	input ProcessWeekInput,
	failures *failureLog,
) ([]UserWeekSummary, error) {
	if len(rows) == 0 {
		return []UserWeekSummary{}, nil
	}

	workerPool, err := ants.NewPool(p.maxWorkers)
	if err != nil {
		return nil, fmt.Errorf("create scoring pool: %w", err)
	}
	defer workerPool.Release()

	summaries := make(chan UserWeekSummary, len(rows))
	var workers sync.WaitGroup
	var submitErr error
	for _, row := range rows {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			summaries <- p.scoreUser(ctx, logger, board, row, input, failures)
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit scoring task: %w", err)
			break
		}
	}
	workers.Wait()
	close(summaries)
	if submitErr != nil {
		return nil, submitErr
	}

	out := make([]UserWeekSummary, 0, len(rows))
	for s := range summaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (p *WeekProcessor) scoreUser(
	ctx context.Context,
	logger *logging.Logger,
	board *scoring.Board,
	row pick.WeeklyPick,
	input ProcessWeekInput,
	failures *failureLog,
) UserWeekSummary {
	summary := UserWeekSummary{UserID: row.UserID}
	key := fmt.Sprintf("%s/%d", row.UserID, input.Week)
	userLogger := logger.With("user_id", row.UserID)

	eligible := row.SurvivorPick != ""
	if eligible {
		lostWeek, eliminated, err := p.survivors.EliminationWeek(ctx, row.UserID, input.Week)
		switch {
		case err != nil:
			err = persistenceError("survivor_pick", key, err)
			failures.add(err)
			userLogger.WarnContext(ctx, "survivor history lookup failed", "error", err)
			eligible = false
		case eliminated:
			userLogger.DebugContext(ctx, "survivor already eliminated", "eliminated_week", lostWeek)
			summary.EliminatedWeek = lostWeek
			eligible = false
		}
	}

	score := board.ScoreUser(row, eligible)
	summary.SkippedPicks = len(score.Skips)
	for _, skip := range score.Skips {
		userLogger.DebugContext(ctx, "pick skipped",
			"game_id", skip.GameID,
			"kind", skip.Kind,
			"reason", string(skip.Reason),
			"detail", skip.Detail,
			"error", skipError(skip.Reason),
		)
	}

	prev, found, err := p.results.PreviousWeeklyResult(ctx, row.UserID, input.Week)
	if err != nil {
		err = persistenceError("weekly_result", key, err)
		failures.add(err)
		userLogger.WarnContext(ctx, "previous weekly result lookup failed", "error", err)
		summary.Status = userStatusFailed
		return summary
	}
	var previous *result.WeeklyResult
	if found {
		previous = &prev
	}

	weekly := result.ComputeCumulative(previous, score.Delta)
	summary.StraightWins = score.Delta.StraightWins
	summary.DriveByWins = score.Delta.DriveByWins
	summary.SpreadWins = score.Delta.SpreadWins
	summary.OverallScore = weekly.OverallScore
	summary.Survivor = string(score.Delta.Survivor)

	if input.DryRun {
		summary.Status = userStatusDryRun
		return summary
	}

	if err := p.results.UpsertWeeklyResult(ctx, weekly); err != nil {
		err = persistenceError("weekly_result", key, err)
		failures.add(err)
		userLogger.WarnContext(ctx, "upsert weekly result failed", "error", err)
		summary.Status = userStatusFailed
		return summary
	}
	summary.Status = userStatusWritten

	if score.Delta.Survivor.Terminal() {
		sp := result.SurvivorPick{
			UserID: row.UserID,
			Week:   input.Week,
			Team:   score.SurvivorTeam,
			Result: score.Delta.Survivor,
		}
		if err := p.survivors.UpsertSurvivorPick(ctx, sp); err != nil {
			err = persistenceError("survivor_pick", key, err)
			failures.add(err)
			userLogger.WarnContext(ctx, "upsert survivor pick failed", "error", err)
		}
	}
	return summary
}

func (p *WeekProcessor) notify(ctx context.Context, out ProcessWeekResult) {
	p.hooksMu.RLock()
	hooks := append([]func(context.Context, ProcessWeekResult){}, p.onComplete...)
	p.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(ctx, out)
	}
}

func skipError(reason scoring.SkipReason) error {
	switch reason {
	case scoring.SkipUnparseableSpread:
		return ErrUnparseableSpreadPick
	case scoring.SkipSpreadWithoutPick:
		return nil
	default:
		return ErrUnjoinableGame
	}
}

// malformedSummaries marks users whose stored picks could not be decoded as
// failed so that the run reports them instead of dropping them silently.
func malformedSummaries(ctx context.Context, logger *logging.Logger, rows []pick.MalformedRow, failures *failureLog) []UserWeekSummary {
	out := make([]UserWeekSummary, 0, len(rows))
	for _, row := range rows {
		cause := row.Err
		if cause == nil {
			cause = errors.New("undecodable weekly pick row")
		}
		err := persistenceError("weekly_pick", fmt.Sprintf("%s/%d", row.UserID, row.Week), cause)
		failures.add(err)
		logger.WarnContext(ctx, "weekly pick row not scored", "user_id", row.UserID, "error", err)
		out = append(out, UserWeekSummary{UserID: row.UserID, Status: userStatusFailed})
	}
	return out
}

type failureLog struct {
	mu      sync.Mutex
	count   int
	details []string
}

func (f *failureLog) add(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	if len(f.details) < maxFailureDetails {
		f.details = append(f.details, err.Error())
	}
}

func (f *failureLog) snapshot() (int, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	details := append([]string(nil), f.details...)
	sort.Strings(details)
	return f.count, details
}
