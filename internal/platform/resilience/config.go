package resilience

import "time"

// CircuitBreakerConfig guards the ESPN scoreboard fetch. A weekly run makes
// one scoreboard request per week, so the threshold counts failed weekly
// fetches rather than individual games.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	// OpenTimeout is how long process-week jobs fail fast with
	// DependencyUnavailable before a trial fetch is allowed.
	OpenTimeout    time.Duration
	HalfOpenMaxReq int
}

// DefaultCircuitBreakerConfig matches the ESPN_CIRCUIT_* environment
// defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

// NormalizeCircuitBreakerConfig fills non-positive fields from the defaults
// so that a partially set environment still yields a usable breaker.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}
