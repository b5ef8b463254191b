package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/pickem-league/internal/app"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/observability"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type options struct {
	week       int
	season     int
	seasonType int
	schedule   string
	dryRun     bool
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseFlags(os.Args[1:], cfg, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.schedule != "" {
		cfg.SchedulePath = opts.schedule
	}

	logger := logging.New(cfg.AppEnv, cfg.LogLevel).Named("processweek")
	logging.SetDefault(logger)

	code := 0
	if err := run(cfg, opts, logger); err != nil {
		logger.Error("process week failed", "week", opts.week, "error", err)
		code = 1
	}
	_ = logger.Sync()
	os.Exit(code)
}

func parseFlags(args []string, cfg config.Config, output io.Writer) (options, error) {
	opts := options{season: cfg.Season, seasonType: cfg.SeasonType}

	fs := flag.NewFlagSet("processweek", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&opts.week, "week", 0, "week number to score (required)")
	fs.IntVar(&opts.season, "season", opts.season, "season year")
	fs.IntVar(&opts.seasonType, "season-type", opts.seasonType, "1 preseason, 2 regular, 3 postseason")
	fs.StringVar(&opts.schedule, "schedule", "", "schedule JSON file used instead of the weekly_games table")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "score without writing results")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.week < 1 {
		return opts, errors.New("--week is required and must be >= 1")
	}
	return opts, nil
}

func run(cfg config.Config, opts options, logger *logging.Logger) error {
	shutdownTracing := observability.InitUptrace(cfg, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, span := otel.Tracer("pickem-league/cmd/processweek").Start(ctx, "processweek.run")
	span.SetAttributes(
		attribute.Int("season", opts.season),
		attribute.Int("season_type", opts.seasonType),
		attribute.Int("week", opts.week),
		attribute.Bool("dry_run", opts.dryRun),
	)
	defer span.End()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("build container: %w", err)
	}
	defer container.Close()

	out, err := container.Processor.ProcessWeek(ctx, usecase.ProcessWeekInput{
		Season:     opts.season,
		SeasonType: opts.seasonType,
		Week:       opts.week,
		DryRun:     opts.dryRun,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	fmt.Println(out.Summary())
	for _, detail := range out.FailureDetails {
		fmt.Println("  failure:", detail)
	}
	return nil
}
