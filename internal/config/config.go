// Package config loads process-level configuration for the vetoncall
// engine from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds process configuration, loaded from environment variables.
// It is distinct from schedule.SchedulerConfig, which describes the
// domain-level roster/constraint knobs and is loaded from a JSON file
// supplied per invocation.
type Config struct {
	// Logging
	LogLevel  string `env:"VETONCALL_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"VETONCALL_LOG_FORMAT" envDefault:"json"`

	// Metrics address parts, combined by MetricsAddr. The CLI's
	// --metrics-addr flag does not read them: it defaults to empty,
	// which leaves the metrics server off.
	MetricsHost string `env:"VETONCALL_METRICS_HOST" envDefault:"127.0.0.1"`
	MetricsPort int    `env:"VETONCALL_METRICS_PORT" envDefault:"9108"`

	// Solver defaults, overridable per-invocation by CLI flags
	SolverTimeoutSeconds int `env:"VETONCALL_SOLVER_TIMEOUT_SECONDS" envDefault:"300"`
	SolverWorkers        int `env:"VETONCALL_SOLVER_WORKERS" envDefault:"8"`

	// Default path to the history store, used when --history is omitted.
	HistoryPath string `env:"VETONCALL_HISTORY_PATH" envDefault:"history.json"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config from env: %w", err)
	}
	return cfg, nil
}

// MetricsAddr returns the address the optional metrics server should
// listen on.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf("%s:%d", c.MetricsHost, c.MetricsPort)
}
