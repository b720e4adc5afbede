package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinicwatch/vetoncall/internal/config"
	"github.com/clinicwatch/vetoncall/internal/telemetry"
	"github.com/clinicwatch/vetoncall/pkg/schedule"
)

func newDiagnoseCmd(cfg *config.Config) *cobra.Command {
	var (
		schedulePath string
		rosterPath   string
		configPath   string
		historyPath  string
		startStr     string
		endStr       string
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Re-verify an externally-supplied schedule without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())

			data, err := os.ReadFile(schedulePath)
			if err != nil {
				return exitWith(exitInvalidInput, fmt.Errorf("reading schedule file: %w", err))
			}
			var entries []schedule.ScheduleEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				return exitWith(exitInvalidInput, fmt.Errorf("parsing schedule json: %w", err))
			}
			if len(entries) == 0 {
				return exitWith(exitInvalidInput, fmt.Errorf("%w: empty schedule", schedule.ErrInvalidHorizon))
			}

			start, end := entries[0].Date, entries[len(entries)-1].Date
			if startStr != "" {
				if start, err = parseHorizonDate(startStr); err != nil {
					return exitWith(exitInvalidInput, fmt.Errorf("%w: parsing --start: %v", schedule.ErrInvalidDate, err))
				}
			}
			if endStr != "" {
				if end, err = parseHorizonDate(endStr); err != nil {
					return exitWith(exitInvalidInput, fmt.Errorf("%w: parsing --end: %v", schedule.ErrInvalidDate, err))
				}
			}
			cal, err := schedule.BuildCalendar(start, end)
			if err != nil {
				return exitWith(exitInvalidInput, err)
			}

			rawVets, err := loadRoster(rosterPath)
			if err != nil {
				return exitWith(exitInvalidInput, err)
			}
			schedCfg, err := loadSchedulerConfig(configPath)
			if err != nil {
				return exitWith(exitInvalidInput, err)
			}

			if historyPath == "" {
				historyPath = cfg.HistoryPath
			}
			store := schedule.NewFileHistoryStore(historyPath, logger)
			periods, err := store.Load()
			if err != nil {
				return exitWith(exitInvalidInput, err)
			}

			model, err := schedule.BuildModel(cal, rawVets, schedCfg, periods)
			if err != nil {
				return exitWith(exitInvalidInput, err)
			}

			started := time.Now()
			report := schedule.Diagnose(model, entries)
			logger.Info("diagnose finished", "status", report.Status, "violations", len(report.Violations), "warnings", len(report.Warnings), "elapsed", time.Since(started))
			telemetry.DiagnosticViolationsTotal.Add(float64(len(report.Violations)))

			return writeJSON("-", report)
		},
	}

	cmd.Flags().StringVar(&schedulePath, "schedule", "", "path to the schedule JSON to re-verify (required)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "path to roster JSON (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to scheduler config JSON")
	cmd.Flags().StringVar(&historyPath, "history", "", "path to history JSON (defaults to VETONCALL_HISTORY_PATH)")
	cmd.Flags().StringVar(&startStr, "start", "", "horizon start date override, YYYY-MM-DD (defaults to the schedule's first entry)")
	cmd.Flags().StringVar(&endStr, "end", "", "horizon end date override, YYYY-MM-DD (defaults to the schedule's last entry)")
	_ = cmd.MarkFlagRequired("schedule")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}
