package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/external/espn"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/result"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// Container holds the process-wide clients and services shared by the
// api server and the batch command.
type Container struct {
	Config    config.Config
	Logger    *logging.Logger
	Processor *usecase.WeekProcessor
	Board     *usecase.BoardService

	db *sqlx.DB
}

type repositories struct {
	schedule  schedule.Repository
	picks     pick.Repository
	results   result.Repository
	survivors result.SurvivorRepository
}

func NewContainer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	c := &Container{Config: cfg, Logger: logger}
	repos, err := c.buildRepositories(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	provider := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     logger.Named("espn"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})

	c.Processor = usecase.NewWeekProcessor(
		provider,
		repos.schedule,
		repos.picks,
		repos.results,
		repos.survivors,
		logger,
		usecase.WeekProcessorConfig{MaxWorkers: cfg.ScoringMaxWorkers},
	)
	c.Board = usecase.NewBoardService(repos.results, repos.survivors, cache.NewStore(cfg.CacheTTL), logger)
	c.Processor.OnComplete(c.Board.Invalidate)

	return c, nil
}

func (c *Container) buildRepositories(ctx context.Context) (repositories, error) {
	var repos repositories

	if c.Config.DBURL != "" {
		db, err := openDB(ctx, c.Config)
		if err != nil {
			return repos, err
		}
		c.db = db
		repos.schedule = postgres.NewScheduleRepository(db, c.Logger)
		repos.picks = postgres.NewPickRepository(db, c.Logger)
		repos.results = postgres.NewResultRepository(db)
		repos.survivors = postgres.NewSurvivorRepository(db)
	} else {
		if c.Config.AppEnv == config.EnvProd || c.Config.AppEnv == config.EnvStage {
			return repos, fmt.Errorf("DB_URL is required when APP_ENV=%s", c.Config.AppEnv)
		}
		c.Logger.Warn("DB_URL not set, using in-memory repositories", "app_env", c.Config.AppEnv)
		repos.schedule = memory.NewScheduleRepository(nil)
		repos.picks = memory.NewPickRepository(nil)
		repos.results = memory.NewResultRepository()
		repos.survivors = memory.NewSurvivorRepository()
	}

	if c.Config.SchedulePath != "" {
		games, err := memory.LoadScheduleFile(c.Config.SchedulePath)
		if err != nil {
			return repos, err
		}
		c.Logger.Info("schedule loaded from file", "path", c.Config.SchedulePath, "games", len(games))
		repos.schedule = memory.NewScheduleRepository(games)
	}

	return repos, nil
}

func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func NewHTTPServer(c *Container) (*http.Server, error) {
	cfg := c.Config
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(c.Processor, c.Board, httpapi.SeasonDefaults{
		Season:     cfg.Season,
		SeasonType: cfg.SeasonType,
	}, c.Logger)
	router := httpapi.NewRouter(handler, c.Logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
