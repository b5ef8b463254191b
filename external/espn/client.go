package espn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pickem-league/internal/domain/result"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	maxBodyBytes   = 4 << 20
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public ESPN scoreboard. It is safe for concurrent use
// and should be built once per process.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.Group[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		logger:     logger,
		breaker:    resilience.NewCircuitBreakerFromConfig(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)),
	}
}

// FetchWeekResults implements usecase.ResultsProvider.
func (c *Client) FetchWeekResults(ctx context.Context, req usecase.WeekResultsRequest) ([]result.ExternalResult, error) {
	fetchErr := func(status int, err error) error {
		return &usecase.FetchError{
			Season:     req.Season,
			SeasonType: req.SeasonType,
			Week:       req.Week,
			StatusCode: status,
			Err:        err,
		}
	}

	fullURL := c.scoreboardURL(req)
	raw, err := c.get(ctx, fullURL)
	if err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) {
			return nil, fetchErr(statusErr.code, err)
		}
		return nil, fetchErr(0, err)
	}

	var envelope scoreboardEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		c.logger.WarnContext(ctx, "espn scoreboard payload not decodable, treating as empty",
			"week", req.Week,
			"body", abbreviateBody(raw),
			"error", err,
		)
		return []result.ExternalResult{}, nil
	}
	return mapEvents(c.decodeEvents(ctx, req.Week, envelope.Events)), nil
}

func (c *Client) decodeEvents(ctx context.Context, week int, raws []sonic.NoCopyRawMessage) []scoreboardEvent {
	events := make([]scoreboardEvent, 0, len(raws))
	for i, raw := range raws {
		var ev scoreboardEvent
		if err := sonic.Unmarshal(raw, &ev); err != nil {
			c.logger.WarnContext(ctx, "espn scoreboard event not decodable, skipping",
				"week", week,
				"index", i,
				"body", abbreviateBody(raw),
				"error", err,
			)
			continue
		}
		events = append(events, ev)
	}
	return events
}

func (c *Client) scoreboardURL(req usecase.WeekResultsRequest) string {
	values := url.Values{}
	values.Set("seasontype", strconv.Itoa(req.SeasonType))
	values.Set("year", strconv.Itoa(req.Season))
	values.Set("week", strconv.Itoa(req.Week))
	return c.baseURL + "/scoreboard?" + values.Encode()
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
		return nil, crerr.Wrap(err, "scoreboard provider is temporarily unavailable")
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		return c.executeRequest(ctx, fullURL)
	})
	if err != nil {
		if crerr.Is(err, errESPNTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return nil, err
	}
	c.breaker.RecordSuccess()
	return raw, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider status=%d body=%s", e.code, e.body)
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errESPNTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errESPNTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(&statusError{code: resp.StatusCode, body: abbreviateBody(raw)}, errESPNTransient)
			default:
				return nil, &statusError{code: resp.StatusCode, body: abbreviateBody(raw)}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

// mapEvents keeps events whose first competition has both a home and an
// away competitor.
func mapEvents(events []scoreboardEvent) []result.ExternalResult {
	out := make([]result.ExternalResult, 0, len(events))
	for _, ev := range events {
		if len(ev.Competitions) == 0 {
			continue
		}
		comp := ev.Competitions[0]
		home, away, ok := splitCompetitors(comp.Competitors)
		if !ok {
			continue
		}

		r := result.ExternalResult{
			EventID:   ev.ID,
			HomeTeam:  teamName(home.Team),
			AwayTeam:  teamName(away.Team),
			HomeScore: asInt(home.Score),
			AwayScore: asInt(away.Score),
			Completed: comp.Status.Type.Completed,
		}
		switch {
		case home.Winner:
			r.WinnerTeam = r.HomeTeam
		case away.Winner:
			r.WinnerTeam = r.AwayTeam
		case r.Completed && r.HomeScore > r.AwayScore:
			r.WinnerTeam = r.HomeTeam
		case r.Completed && r.AwayScore > r.HomeScore:
			r.WinnerTeam = r.AwayTeam
		}
		out = append(out, r)
	}
	return out
}

func splitCompetitors(items []competitor) (home, away competitor, ok bool) {
	var haveHome, haveAway bool
	for _, c := range items {
		switch strings.ToLower(strings.TrimSpace(c.HomeAway)) {
		case "home":
			if !haveHome {
				home, haveHome = c, true
			}
		case "away":
			if !haveAway {
				away, haveAway = c, true
			}
		}
	}
	return home, away, haveHome && haveAway
}

func teamName(t competitorTeam) string {
	for _, candidate := range []string{t.DisplayName, t.ShortDisplayName, t.Abbreviation, t.Name} {
		if strings.TrimSpace(candidate) != "" {
			return team.Normalize(candidate)
		}
	}
	return ""
}

// asInt reads scores that arrive as strings, numbers or {"value": n}.
func asInt(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return int(math.Round(v))
	case int:
		return v
	case int64:
		return int(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return int(math.Round(f))
	case map[string]any:
		if inner, ok := v["value"]; ok {
			return asInt(inner)
		}
		return asInt(v["displayValue"])
	default:
		return 0
	}
}
