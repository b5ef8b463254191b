package observability

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// InitUptrace installs the global OpenTelemetry providers. The returned
// shutdown flushes pending spans and detaches the log mirror.
func InitUptrace(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled, "dsn_set", cfg.UptraceDSN != "")
		return func(context.Context) error { return nil }
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newUptraceLogMirror(cfg.ServiceVersion))
	} else {
		logging.SetMirror(nil)
	}

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}
}
