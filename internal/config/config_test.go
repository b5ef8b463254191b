package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SEASON", "2024")
	t.Setenv("SEASON_TYPE", "")
	t.Setenv("SCORING_MAX_WORKERS", "")
	t.Setenv("ESPN_MAX_RETRIES", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.Season != 2024 || cfg.SeasonType != 2 {
		t.Fatalf("unexpected season: %d type %d", cfg.Season, cfg.SeasonType)
	}
	if cfg.ScoringMaxWorkers != 8 {
		t.Fatalf("unexpected ScoringMaxWorkers: %d", cfg.ScoringMaxWorkers)
	}
	if cfg.ESPNMaxRetries != 2 || cfg.ESPNTimeout != 15*time.Second {
		t.Fatalf("unexpected espn settings: retries=%d timeout=%s", cfg.ESPNMaxRetries, cfg.ESPNTimeout)
	}
	if !cfg.ESPNCircuitEnabled || cfg.ESPNCircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit settings: %+v", cfg)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "LOCAL")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("SEASON", "2025")
	t.Setenv("SEASON_TYPE", "3")
	t.Setenv("SCORING_MAX_WORKERS", "2")
	t.Setenv("ESPN_TIMEOUT", "3s")
	t.Setenv("ESPN_CIRCUIT_ENABLED", "false")
	t.Setenv("SCHEDULE_PATH", " ./schedule.json ")
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvLocal || cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected env/level: %s %s", cfg.AppEnv, cfg.LogLevel)
	}
	if cfg.Season != 2025 || cfg.SeasonType != 3 || cfg.ScoringMaxWorkers != 2 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.ESPNTimeout != 3*time.Second || cfg.ESPNCircuitEnabled {
		t.Fatalf("unexpected espn overrides: %+v", cfg)
	}
	if cfg.SchedulePath != "./schedule.json" {
		t.Fatalf("unexpected SchedulePath: %q", cfg.SchedulePath)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"season type out of range": {"SEASON_TYPE", "4"},
		"season out of range":      {"SEASON", "1850"},
		"zero workers":             {"SCORING_MAX_WORKERS", "0"},
		"negative retries":         {"ESPN_MAX_RETRIES", "-1"},
		"bad timeout":              {"ESPN_TIMEOUT", "soon"},
		"non-positive cache ttl":   {"CACHE_TTL", "0s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("SEASON", "2024")
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestValidateServer(t *testing.T) {
	cfg := Config{AppEnv: EnvProd, HTTPAddr: ":8080"}
	if err := cfg.ValidateServer(); err == nil {
		t.Fatalf("expected prod without job token to fail")
	}
	cfg.InternalJobToken = "secret"
	if err := cfg.ValidateServer(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.HTTPAddr = ""
	if err := cfg.ValidateServer(); err == nil {
		t.Fatalf("expected empty addr to fail")
	}
}

func TestLoad_CORSAllowedOrigins(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://pickem.example.com , ,http://localhost:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://pickem.example.com" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}
