package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// Config stores runtime configuration shared by the binaries.
type Config struct {
	AppEnv                    string
	ServiceName               string
	ServiceVersion            string
	HTTPAddr                  string
	ReadTimeout               time.Duration
	WriteTimeout              time.Duration
	LogLevel                  logging.Level
	DBURL                     string
	DBDisablePreparedBinary   bool
	SchedulePath              string
	Season                    int
	SeasonType                int
	ScoringMaxWorkers         int
	CacheTTL                  time.Duration
	CORSAllowedOrigins        []string
	InternalJobToken          string
	ESPNBaseURL               string
	ESPNTimeout               time.Duration
	ESPNMaxRetries            int
	ESPNCircuitEnabled        bool
	ESPNCircuitFailureCount   int
	ESPNCircuitOpenTimeout    time.Duration
	ESPNCircuitHalfOpenMaxReq int
	UptraceEnabled            bool
	UptraceDSN                string
	UptraceLogsEnabled        bool
	PyroscopeEnabled          bool
	PyroscopeServerAddress    string
	PyroscopeAppName          string
	PyroscopeAuthToken        string
	PyroscopeUploadRate       time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:           appEnv,
		ServiceName:      strings.TrimSpace(getEnv("APP_SERVICE_NAME", "pickem-league")),
		ServiceVersion:   strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:         strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:         parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:            strings.TrimSpace(getEnv("DB_URL", "")),
		SchedulePath:     strings.TrimSpace(getEnv("SCHEDULE_PATH", "")),
		InternalJobToken: strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		ESPNBaseURL:      strings.TrimSpace(getEnv("ESPN_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/football/nfl")),
		PyroscopeAppName: strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", "pickem-league")),
	}

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")); err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	if cfg.ReadTimeout, err = getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "120s"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsPositiveDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}

	if cfg.Season, err = getEnvAsInt("SEASON", time.Now().UTC().Year()); err != nil {
		return Config{}, fmt.Errorf("parse SEASON: %w", err)
	}
	if cfg.Season < 1990 || cfg.Season > 2100 {
		return Config{}, fmt.Errorf("SEASON must be between 1990 and 2100")
	}
	if cfg.SeasonType, err = getEnvAsInt("SEASON_TYPE", 2); err != nil {
		return Config{}, fmt.Errorf("parse SEASON_TYPE: %w", err)
	}
	if cfg.SeasonType < 1 || cfg.SeasonType > 3 {
		return Config{}, fmt.Errorf("SEASON_TYPE must be 1 (pre), 2 (regular) or 3 (post)")
	}
	if cfg.ScoringMaxWorkers, err = getEnvAsInt("SCORING_MAX_WORKERS", 8); err != nil {
		return Config{}, fmt.Errorf("parse SCORING_MAX_WORKERS: %w", err)
	}
	if cfg.ScoringMaxWorkers < 1 {
		return Config{}, fmt.Errorf("SCORING_MAX_WORKERS must be >= 1")
	}

	if cfg.ESPNTimeout, err = getEnvAsPositiveDuration("ESPN_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}
	if cfg.ESPNMaxRetries, err = getEnvAsInt("ESPN_MAX_RETRIES", 2); err != nil {
		return Config{}, fmt.Errorf("parse ESPN_MAX_RETRIES: %w", err)
	}
	if cfg.ESPNMaxRetries < 0 {
		return Config{}, fmt.Errorf("ESPN_MAX_RETRIES must be >= 0")
	}
	if cfg.ESPNCircuitEnabled, err = strconv.ParseBool(getEnv("ESPN_CIRCUIT_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.ESPNCircuitFailureCount, err = getEnvAsInt("ESPN_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.ESPNCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.ESPNCircuitOpenTimeout, err = getEnvAsPositiveDuration("ESPN_CIRCUIT_OPEN_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.ESPNCircuitHalfOpenMaxReq, err = getEnvAsInt("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.ESPNCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ValidateServer checks what only the HTTP server needs.
func (c Config) ValidateServer() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}
	if c.InternalJobToken == "" && c.AppEnv == EnvProd {
		return fmt.Errorf("INTERNAL_JOB_TOKEN is required when APP_ENV=%s", EnvProd)
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	level, err := logging.ParseLevel(v)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvLocal, EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s, %s", v, EnvLocal, EnvDev, EnvStage, EnvProd)
	}
}
