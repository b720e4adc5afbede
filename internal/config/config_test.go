package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		name  string
		check func(*Config) bool
	}{
		{"default log level is info", func(c *Config) bool { return c.LogLevel == "info" }},
		{"default log format is json", func(c *Config) bool { return c.LogFormat == "json" }},
		{"default solver timeout is 300s", func(c *Config) bool { return c.SolverTimeoutSeconds == 300 }},
		{"default solver workers is 8", func(c *Config) bool { return c.SolverWorkers == 8 }},
		{"default history path", func(c *Config) bool { return c.HistoryPath == "history.json" }},
		{"metrics addr format", func(c *Config) bool { return c.MetricsAddr() == "127.0.0.1:9108" }},
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(cfg) {
				t.Errorf("check failed for %s", tt.name)
			}
		})
	}
}
