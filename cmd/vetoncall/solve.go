package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinicwatch/vetoncall/internal/config"
	"github.com/clinicwatch/vetoncall/internal/telemetry"
	"github.com/clinicwatch/vetoncall/pkg/schedule"
)

const (
	exitInvalidInput = 1
	exitInfeasible   = 2
	exitTimeout      = 3
)

func newSolveCmd(cfg *config.Config) *cobra.Command {
	var (
		rosterPath  string
		configPath  string
		historyPath string
		startStr    string
		endStr      string
		periodName  string
		outPath     string
		noHistory   bool
		workers     int
		timeoutSec  int
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build a schedule over a horizon and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())

			start, err := parseHorizonDate(startStr)
			if err != nil {
				return fmt.Errorf("%w: parsing --start: %v", schedule.ErrInvalidDate, err)
			}
			end, err := parseHorizonDate(endStr)
			if err != nil {
				return fmt.Errorf("%w: parsing --end: %v", schedule.ErrInvalidDate, err)
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

			if workers <= 0 {
				workers = cfg.SolverWorkers
			}
			if timeoutSec <= 0 {
				timeoutSec = cfg.SolverTimeoutSeconds
			}

			ctx, cancel := rootContext()
			defer cancel()

			started := time.Now()
			result := schedule.Solve(ctx, model, schedule.SolveOptions{
				TimeBudget: time.Duration(timeoutSec) * time.Second,
				Workers:    workers,
			})
			telemetry.SolveDuration.Observe(time.Since(started).Seconds())
			telemetry.SolveStatusTotal.WithLabelValues(string(result.Status)).Inc()

			logger.Info("solve finished", "status", result.Status, "attempts", result.Attempts, "elapsed", result.Elapsed)

			switch result.Status {
			case schedule.StatusInfeasible:
				return exitWith(exitInfeasible, schedule.ErrInfeasible)
			case schedule.StatusTimeout:
				return exitWith(exitTimeout, schedule.ErrTimeout)
			}

			entries := schedule.ExtractSchedule(model, result.Vars)
			if err := writeJSON(outPath, entries); err != nil {
				return fmt.Errorf("writing schedule output: %w", err)
			}

			report := schedule.Diagnose(model, entries)
			for _, w := range report.Warnings {
				telemetry.BalanceGap.WithLabelValues(string(w.Rule)).Set(1)
			}
			telemetry.DiagnosticViolationsTotal.Add(float64(len(report.Violations)))
			if err := writeReportToStderr(report); err != nil {
				logger.Warn("writing diagnostic report to stderr", "error", err)
			}

			if !noHistory {
				if err := schedule.WriteHistory(store, model, result.Vars, periodName); err != nil {
					logger.Error("history write failed, schedule already produced", "error", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "path to roster JSON (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to scheduler config JSON (defaults applied if omitted)")
	cmd.Flags().StringVar(&historyPath, "history", "", "path to history JSON (defaults to VETONCALL_HISTORY_PATH)")
	cmd.Flags().StringVar(&startStr, "start", "", "horizon start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&endStr, "end", "", "horizon end date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&periodName, "period", "", "history period name (defaults to <start>_to_<end>)")
	cmd.Flags().StringVar(&outPath, "out", "-", "schedule output path, - for stdout")
	cmd.Flags().BoolVar(&noHistory, "no-write-history", false, "skip writing the solved horizon into history")
	cmd.Flags().IntVar(&workers, "workers", 0, "solver worker count (defaults to VETONCALL_SOLVER_WORKERS)")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "solve time budget in seconds (defaults to VETONCALL_SOLVER_TIMEOUT_SECONDS)")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// exitWith wraps err so main can translate it into the process exit
// code spec.md §6 requires (non-zero on infeasible/timeout/invalid
// input), while cobra still prints the underlying message.
func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitInvalidInput
}

func writeReportToStderr(report *schedule.DiagnosticReport) error {
	return writeJSONToStderr(report)
}
