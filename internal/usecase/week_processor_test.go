package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/result"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	pickmock "github.com/riskibarqy/pickem-league/internal/mocks/domain/pick"
	resultmock "github.com/riskibarqy/pickem-league/internal/mocks/domain/result"
	schedulemock "github.com/riskibarqy/pickem-league/internal/mocks/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu      sync.Mutex
	byWeek  map[int][]result.ExternalResult
	err     error
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (p *stubProvider) FetchWeekResults(_ context.Context, req WeekResultsRequest) ([]result.ExternalResult, error) {
	p.calls.Add(1)
	if p.started != nil {
		p.started <- struct{}{}
		<-p.release
	}
	if p.err != nil {
		return nil, p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]result.ExternalResult(nil), p.byWeek[req.Week]...), nil
}

type pipelineFixture struct {
	provider  *stubProvider
	results   *memory.ResultRepository
	survivors *memory.SurvivorRepository
	processor *WeekProcessor
}

func seasonGames() []schedule.Game {
	return []schedule.Game{
		{ID: "G1", Week: 1, AwayTeam: "Kansas City", HomeTeam: "Dallas", DriveByTeam: "Dallas", PointSpread: &schedule.Spread{Team: "Dallas", Line: 3.5}},
		{ID: "G2", Week: 1, AwayTeam: "Cleveland", HomeTeam: "Pittsburgh"},
		{ID: "G1", Week: 2, AwayTeam: "Dallas", HomeTeam: "NY Giants"},
		{ID: "G2", Week: 2, AwayTeam: "Cleveland", HomeTeam: "Baltimore"},
	}
}

func seasonResults() map[int][]result.ExternalResult {
	return map[int][]result.ExternalResult{
		1: {
			{EventID: "101", HomeTeam: "Dallas Cowboys", AwayTeam: "Kansas City Chiefs", HomeScore: 24, AwayScore: 20, Completed: true, WinnerTeam: "Dallas Cowboys"},
			{EventID: "102", HomeTeam: "Pittsburgh Steelers", AwayTeam: "Cleveland Browns", HomeScore: 27, AwayScore: 10, Completed: true, WinnerTeam: "Pittsburgh Steelers"},
			{EventID: "199", HomeTeam: "Seattle Seahawks", AwayTeam: "Arizona Cardinals", HomeScore: 3, AwayScore: 0, Completed: true, WinnerTeam: "Seattle Seahawks"},
		},
		2: {
			{EventID: "201", HomeTeam: "New York Giants", AwayTeam: "Dallas Cowboys", HomeScore: 10, AwayScore: 31, Completed: true, WinnerTeam: "Dallas Cowboys"},
			{EventID: "202", HomeTeam: "Baltimore Ravens", AwayTeam: "Cleveland Browns", HomeScore: 13, AwayScore: 17, Completed: true, WinnerTeam: "Cleveland Browns"},
		},
	}
}

func seasonPicks() []pick.WeeklyPick {
	return []pick.WeeklyPick{
		{
			UserID:       "alice",
			Week:         1,
			Picks:        map[string]string{"G1": "Dallas Cowboys", "G2": "Pittsburgh"},
			PointSpreads: map[string]string{"G1": "Dallas Cowboys Covers +3.5"},
			SurvivorPick: "Cleveland Browns",
		},
		{
			UserID:       "bob",
			Week:         1,
			Picks:        map[string]string{"G1": "Kansas City Chiefs", "G2": "Pittsburgh", "G9": "Dallas"},
			PointSpreads: map[string]string{"G2": "Pittsburgh by a mile"},
			SurvivorPick: "Pittsburgh",
		},
		{
			UserID:       "alice",
			Week:         2,
			Picks:        map[string]string{"G1": "Dallas", "G2": "Cleveland"},
			SurvivorPick: "Cleveland",
		},
		{
			UserID:       "bob",
			Week:         2,
			Picks:        map[string]string{"G1": "NY Giants", "G2": "Cleveland"},
			SurvivorPick: "Dallas",
		},
	}
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		provider:  &stubProvider{byWeek: seasonResults()},
		results:   memory.NewResultRepository(),
		survivors: memory.NewSurvivorRepository(),
	}
	f.processor = NewWeekProcessor(
		f.provider,
		memory.NewScheduleRepository(seasonGames()),
		memory.NewPickRepository(seasonPicks()),
		f.results,
		f.survivors,
		nil,
		WeekProcessorConfig{MaxWorkers: 4},
	)
	f.processor.now = func() time.Time { return time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func weekInput(week int) ProcessWeekInput {
	return ProcessWeekInput{Season: 2025, SeasonType: 2, Week: week}
}

func TestWeekProcessor_ScoresWeekAndPersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPipelineFixture(t)

	out, err := f.processor.ProcessWeek(ctx, weekInput(1))
	require.NoError(t, err)

	assert.Equal(t, 3, out.EventsFetched)
	assert.Equal(t, 2, out.GamesMatched)
	assert.Equal(t, 1, out.UnmatchedEvents)
	assert.Equal(t, 2, out.GameResultsWritten)
	assert.Equal(t, 2, out.UsersScored)
	assert.Equal(t, 2, out.WeeklyResultsWritten)
	assert.Equal(t, 2, out.SurvivorResolved)
	assert.Equal(t, 2, out.SkippedPicks)
	assert.Zero(t, out.Failures)

	rows, err := f.results.ListWeeklyResultsByWeek(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, result.WeeklyResult{
		UserID: "alice", Week: 1, ThisWeekScore: 2, OverallScore: 2,
		TotalDriveBys: 1, TotalPointSpreads: 1, SurvivorResult: result.SurvivorLoss,
	}, rows[0])
	assert.Equal(t, result.WeeklyResult{
		UserID: "bob", Week: 1, ThisWeekScore: 1, OverallScore: 1, SurvivorResult: result.SurvivorWin,
	}, rows[1])

	games := f.results.GameResults(1)
	require.Len(t, games, 2)
	assert.Equal(t, "Dallas Cowboys", games[0].CorrectSpread)
	assert.Equal(t, "Dallas Cowboys", games[0].DriveByTeam)
}

func TestWeekProcessor_CumulativeAndSurvivorTermination(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPipelineFixture(t)

	_, err := f.processor.ProcessWeek(ctx, weekInput(1))
	require.NoError(t, err)
	out, err := f.processor.ProcessWeek(ctx, weekInput(2))
	require.NoError(t, err)
	assert.Equal(t, 1, out.SurvivorEliminated)

	rows, err := f.results.ListWeeklyResultsByWeek(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	alice := rows[0]
	assert.Equal(t, 2, alice.ThisWeekScore)
	assert.Equal(t, 2, alice.PrevWeekScore)
	assert.Equal(t, 4, alice.OverallScore)
	assert.Equal(t, 1, alice.TotalDriveBys)
	assert.Equal(t, 1, alice.TotalPointSpreads)
	assert.Empty(t, alice.SurvivorResult, "eliminated users get no survivor scoring")

	bob := rows[1]
	assert.Equal(t, 2, bob.OverallScore)
	assert.Equal(t, result.SurvivorWin, bob.SurvivorResult)

	picks, err := f.survivors.ListSurvivorPicks(ctx)
	require.NoError(t, err)
	require.Len(t, picks, 3)
	assert.Equal(t, result.SurvivorPick{UserID: "alice", Week: 1, Team: "Cleveland Browns", Result: result.SurvivorLoss}, picks[0])
	week, eliminated, err := f.survivors.EliminationWeek(ctx, "alice", 3)
	require.NoError(t, err)
	assert.True(t, eliminated)
	assert.Equal(t, 1, week)
}

func TestWeekProcessor_RerunIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPipelineFixture(t)

	_, err := f.processor.ProcessWeek(ctx, weekInput(1))
	require.NoError(t, err)
	_, err = f.processor.ProcessWeek(ctx, weekInput(2))
	require.NoError(t, err)
	first, err := f.results.ListWeeklyResultsByWeek(ctx, 2)
	require.NoError(t, err)

	_, err = f.processor.ProcessWeek(ctx, weekInput(2))
	require.NoError(t, err)
	second, err := f.results.ListWeeklyResultsByWeek(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWeekProcessor_FetchFailureWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPipelineFixture(t)
	f.provider.err = errors.New("connection reset")

	_, err := f.processor.ProcessWeek(ctx, weekInput(1))
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, fetchErr.Week)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)

	rows, _ := f.results.ListWeeklyResultsByWeek(ctx, 1)
	assert.Empty(t, rows)
	assert.Empty(t, f.results.GameResults(1))
}

func TestWeekProcessor_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t)
	for _, in := range []ProcessWeekInput{
		{Season: 2025, SeasonType: 2, Week: 0},
		{Season: 2025, SeasonType: 7, Week: 1},
		{Season: 12, SeasonType: 2, Week: 1},
	} {
		_, err := f.processor.ProcessWeek(context.Background(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
	if calls := f.provider.calls.Load(); calls != 0 {
		t.Fatalf("provider must not be called for invalid input, got %d calls", calls)
	}
}

func TestWeekProcessor_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPipelineFixture(t)
	notified := false
	f.processor.OnComplete(func(context.Context, ProcessWeekResult) { notified = true })

	in := weekInput(1)
	in.DryRun = true
	out, err := f.processor.ProcessWeek(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, 2, out.UsersScored)
	assert.Zero(t, out.WeeklyResultsWritten)
	assert.Zero(t, out.GameResultsWritten)
	for _, u := range out.Users {
		assert.Equal(t, userStatusDryRun, u.Status)
	}
	rows, _ := f.results.ListWeeklyResultsByWeek(ctx, 1)
	assert.Empty(t, rows)
	assert.False(t, notified)
	assert.Contains(t, out.Summary(), "dry_run")
}

func TestWeekProcessor_ConcurrentCallsShareOneRun(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t)
	f.provider.started = make(chan struct{}, 2)
	f.provider.release = make(chan struct{})

	var wg sync.WaitGroup
	outs := make([]ProcessWeekResult, 2)
	for i := range outs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.processor.ProcessWeek(context.Background(), weekInput(1))
			if err != nil {
				t.Errorf("process week: %v", err)
			}
			outs[i] = out
		}()
	}

	<-f.provider.started
	time.Sleep(50 * time.Millisecond)
	close(f.provider.release)
	wg.Wait()

	if calls := f.provider.calls.Load(); calls != 1 {
		t.Fatalf("expected one provider call, got %d", calls)
	}
	assert.Equal(t, outs[0].WeeklyResultsWritten, outs[1].WeeklyResultsWritten)
}

func TestWeekProcessor_PersistenceFailureIsolatedPerUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := &stubProvider{byWeek: seasonResults()}
	picks := pickmock.NewRepository(t)
	results := resultmock.NewRepository(t)
	survivors := resultmock.NewSurvivorRepository(t)

	picks.On("ListByWeek", mock.Anything, 1).Return(seasonPicks()[:2], nil, nil).Once()
	results.On("UpsertGameResult", mock.Anything, mock.AnythingOfType("result.GameResult")).Return(nil).Times(2)
	results.On("PreviousWeeklyResult", mock.Anything, mock.AnythingOfType("string"), 1).Return(result.WeeklyResult{}, false, nil).Twice()
	results.On("UpsertWeeklyResult", mock.Anything, mock.MatchedBy(func(wr result.WeeklyResult) bool { return wr.UserID == "alice" })).
		Return(errors.New("deadlock detected")).Once()
	results.On("UpsertWeeklyResult", mock.Anything, mock.MatchedBy(func(wr result.WeeklyResult) bool { return wr.UserID == "bob" })).
		Return(nil).Once()
	survivors.On("EliminationWeek", mock.Anything, mock.AnythingOfType("string"), 1).Return(0, false, nil).Twice()
	survivors.On("UpsertSurvivorPick", mock.Anything, result.SurvivorPick{UserID: "bob", Week: 1, Team: "Pittsburgh Steelers", Result: result.SurvivorWin}).
		Return(nil).Once()

	processor := NewWeekProcessor(provider, memory.NewScheduleRepository(seasonGames()), picks, results, survivors, nil, WeekProcessorConfig{MaxWorkers: 2})

	out, err := processor.ProcessWeek(ctx, weekInput(1))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Failures)
	require.Len(t, out.FailureDetails, 1)
	assert.Contains(t, out.FailureDetails[0], "weekly_result alice/1")
	assert.Equal(t, 1, out.WeeklyResultsWritten)
	require.Len(t, out.Users, 2)
	assert.Equal(t, userStatusFailed, out.Users[0].Status)
	assert.Equal(t, userStatusWritten, out.Users[1].Status)
}

func TestWeekProcessor_MalformedPickRowCountsAsFailure(t *testing.T) {
	t.Parallel()

	picks := pickmock.NewRepository(t)
	picks.On("ListByWeek", mock.Anything, 1).Return(
		seasonPicks()[:2],
		[]pick.MalformedRow{{UserID: "carol", Week: 1, Err: errors.New("decode picks: invalid character 'x'")}},
		nil,
	).Once()

	results := memory.NewResultRepository()
	processor := NewWeekProcessor(&stubProvider{byWeek: seasonResults()}, memory.NewScheduleRepository(seasonGames()),
		picks, results, memory.NewSurvivorRepository(), nil, WeekProcessorConfig{MaxWorkers: 2})

	out, err := processor.ProcessWeek(context.Background(), weekInput(1))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Failures)
	require.Len(t, out.FailureDetails, 1)
	assert.Contains(t, out.FailureDetails[0], "weekly_pick carol/1")
	assert.Equal(t, 2, out.UsersScored)
	assert.Equal(t, 2, out.WeeklyResultsWritten)

	require.Len(t, out.Users, 3)
	assert.Equal(t, "carol", out.Users[2].UserID)
	assert.Equal(t, userStatusFailed, out.Users[2].Status)
}

func TestWeekProcessor_OnCompleteRunsAfterWrite(t *testing.T) {
	t.Parallel()

	f := newPipelineFixture(t)
	var got ProcessWeekResult
	f.processor.OnComplete(func(_ context.Context, out ProcessWeekResult) { got = out })

	_, err := f.processor.ProcessWeek(context.Background(), weekInput(1))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Week)
	assert.Equal(t, 2, got.WeeklyResultsWritten)
}

func TestWeekProcessor_ScheduleReadFailureStopsRun(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{byWeek: seasonResults()}
	games := schedulemock.NewRepository(t)
	picks := pickmock.NewRepository(t)
	results := resultmock.NewRepository(t)
	survivors := resultmock.NewSurvivorRepository(t)

	games.On("ListByWeek", mock.Anything, 1).Return(nil, errors.New("relation \"weekly_games\" does not exist")).Once()

	processor := NewWeekProcessor(provider, games, picks, results, survivors, nil, WeekProcessorConfig{})

	_, err := processor.ProcessWeek(context.Background(), weekInput(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list schedule for week 1")
	assert.Equal(t, int32(1), provider.calls.Load())
	results.AssertNotCalled(t, "UpsertGameResult", mock.Anything, mock.Anything)
	picks.AssertNotCalled(t, "ListByWeek", mock.Anything, mock.Anything)
}

func TestWeekProcessor_DuplicateScheduleGameIsInvalidInput(t *testing.T) {
	t.Parallel()

	games := schedulemock.NewRepository(t)
	dup := []schedule.Game{
		{ID: "G1", Week: 1, AwayTeam: "Kansas City", HomeTeam: "Dallas"},
		{ID: "G1", Week: 1, AwayTeam: "Cleveland", HomeTeam: "Pittsburgh"},
	}
	games.On("ListByWeek", mock.Anything, 1).Return(dup, nil).Once()

	processor := NewWeekProcessor(&stubProvider{byWeek: seasonResults()}, games,
		pickmock.NewRepository(t), resultmock.NewRepository(t), resultmock.NewSurvivorRepository(t), nil, WeekProcessorConfig{})

	_, err := processor.ProcessWeek(context.Background(), weekInput(1))
	require.ErrorIs(t, err, ErrInvalidInput)
}
