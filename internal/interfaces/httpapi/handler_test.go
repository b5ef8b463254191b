package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type stubRunner struct {
	calls []usecase.ProcessWeekInput
	out   usecase.ProcessWeekResult
	err   error
}

func (s *stubRunner) ProcessWeek(_ context.Context, input usecase.ProcessWeekInput) (usecase.ProcessWeekResult, error) {
	s.calls = append(s.calls, input)
	return s.out, s.err
}

type stubBoard struct {
	weeks     []int
	board     usecase.Leaderboard
	standings []usecase.SurvivorStanding
	err       error
}

func (s *stubBoard) Leaderboard(_ context.Context, week int) (usecase.Leaderboard, error) {
	s.weeks = append(s.weeks, week)
	return s.board, s.err
}

func (s *stubBoard) Survivor(context.Context) ([]usecase.SurvivorStanding, error) {
	return s.standings, s.err
}

func newTestRouter(runner *stubRunner, board *stubBoard) http.Handler {
	handler := NewHandler(runner, board, SeasonDefaults{Season: 2024, SeasonType: 2}, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"}, "job-secret")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubRunner{}, &stubBoard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", data)
	}
}

func TestRunProcessWeekJob_UsesDefaultsAndQuery(t *testing.T) {
	runner := &stubRunner{out: usecase.ProcessWeekResult{Season: 2024, SeasonType: 2, Week: 5, UsersScored: 3}}
	router := newTestRouter(runner, &stubBoard{})

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/process-week?week=5&dry_run=true", nil)
	req.Header.Set(internalJobTokenHeader, "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected one runner call, got %d", len(runner.calls))
	}
	want := usecase.ProcessWeekInput{Season: 2024, SeasonType: 2, Week: 5, DryRun: true}
	if runner.calls[0] != want {
		t.Fatalf("unexpected input: %+v", runner.calls[0])
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["users_scored"] != float64(3) {
		t.Fatalf("expected users_scored=3, got %v", data["users_scored"])
	}
}

func TestRunProcessWeekJob_BodyOverridesQuery(t *testing.T) {
	runner := &stubRunner{}
	router := newTestRouter(runner, &stubBoard{})

	body := strings.NewReader(`{"season":2023,"week":7,"dry_run":false}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/process-week?week=2&dry_run=true&season_type=3", body)
	req.Header.Set(internalJobTokenHeader, "job-secret")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	want := usecase.ProcessWeekInput{Season: 2023, SeasonType: 3, Week: 7, DryRun: false}
	if len(runner.calls) != 1 || runner.calls[0] != want {
		t.Fatalf("unexpected input: %+v", runner.calls)
	}
}

func TestRunProcessWeekJob_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		url  string
		body string
	}{
		{name: "non numeric week", url: "/v1/jobs/process-week?week=three"},
		{name: "bad dry run", url: "/v1/jobs/process-week?week=3&dry_run=maybe"},
		{name: "malformed json", url: "/v1/jobs/process-week", body: `{"week":`},
		{name: "unknown field", url: "/v1/jobs/process-week", body: `{"week":3,"league":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{}
			router := newTestRouter(runner, &stubBoard{})

			req := httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body))
			req.Header.Set(internalJobTokenHeader, "job-secret")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d body=%s", rec.Code, rec.Body.String())
			}
			if len(runner.calls) != 0 {
				t.Fatalf("runner should not be called on bad input")
			}
		})
	}
}

func TestRunProcessWeekJob_RequiresToken(t *testing.T) {
	runner := &stubRunner{}
	router := newTestRouter(runner, &stubBoard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/jobs/process-week?week=1", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("runner should not be called without a token")
	}
}

func TestRunProcessWeekJob_ProviderFailureIsBadGateway(t *testing.T) {
	runner := &stubRunner{err: &usecase.FetchError{Season: 2024, SeasonType: 2, Week: 4, StatusCode: 503, Err: errors.New("upstream down")}}
	router := newTestRouter(runner, &stubBoard{})

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/process-week?week=4", nil)
	req.Header.Set(internalJobTokenHeader, "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}

func TestGetLeaderboard(t *testing.T) {
	board := &stubBoard{board: usecase.Leaderboard{
		Week: 3,
		Entries: []usecase.LeaderboardEntry{
			{Rank: 1, UserID: "alice", ThisWeekScore: 12, OverallScore: 30},
			{Rank: 2, UserID: "bob", ThisWeekScore: 9, OverallScore: 25},
		},
	}}
	router := newTestRouter(&stubRunner{}, board)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leaderboard?week=3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(board.weeks) != 1 || board.weeks[0] != 3 {
		t.Fatalf("unexpected week forwarded: %v", board.weeks)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	entries, _ := data["entries"].([]any)
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %v", data["entries"])
	}
}

func TestGetLeaderboard_LatestWeekWhenOmitted(t *testing.T) {
	board := &stubBoard{}
	router := newTestRouter(&stubRunner{}, board)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(board.weeks) != 1 || board.weeks[0] != 0 {
		t.Fatalf("expected week 0 to mean latest, got %v", board.weeks)
	}
}

func TestGetLeaderboard_InvalidWeek(t *testing.T) {
	for _, raw := range []string{"0", "-1", "abc"} {
		board := &stubBoard{}
		router := newTestRouter(&stubRunner{}, board)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leaderboard?week="+raw, nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("week=%s: expected status 400, got %d", raw, rec.Code)
		}
		if len(board.weeks) != 0 {
			t.Fatalf("week=%s: board should not be queried", raw)
		}
	}
}

func TestGetLeaderboard_NotFound(t *testing.T) {
	board := &stubBoard{err: usecase.ErrNotFound}
	router := newTestRouter(&stubRunner{}, board)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leaderboard?week=9", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetSurvivorStandings(t *testing.T) {
	board := &stubBoard{standings: []usecase.SurvivorStanding{
		{UserID: "alice", Alive: true, Picks: []usecase.SurvivorWeek{{Week: 1, Team: "Chiefs", Result: "win"}}},
		{UserID: "bob", Alive: false, EliminatedWeek: 1, Picks: []usecase.SurvivorWeek{{Week: 1, Team: "Jets", Result: "loss"}}},
	}}
	router := newTestRouter(&stubRunner{}, board)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/survivor", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	items, _ := data["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected two standings, got %v", data["items"])
	}
}
