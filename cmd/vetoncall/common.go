package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/clinicwatch/vetoncall/pkg/schedule"
)

type loggerKey struct{}

func withLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

func loadRoster(path string) (map[string]schedule.VetInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}
	var raw map[string]schedule.VetInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing roster json: %v", schedule.ErrInvalidRoster, err)
	}
	return raw, nil
}

func loadSchedulerConfig(path string) (schedule.SchedulerConfig, error) {
	if path == "" {
		return schedule.NewSchedulerConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schedule.SchedulerConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	return schedule.ParseConfigJSON(data)
}

func parseHorizonDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeJSONToStderr(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = os.Stderr.Write(append(data, '\n'))
	return err
}
