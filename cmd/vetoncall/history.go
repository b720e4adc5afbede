package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinicwatch/vetoncall/internal/config"
	"github.com/clinicwatch/vetoncall/pkg/schedule"
)

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "history",
		Short: "Inspect the persisted assignment history",
	}
	root.AddCommand(newHistoryShowCmd(cfg))
	return root
}

func newHistoryShowCmd(cfg *config.Config) *cobra.Command {
	var historyPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print cumulative per-vet history stats as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())

			if historyPath == "" {
				historyPath = cfg.HistoryPath
			}
			store := schedule.NewFileHistoryStore(historyPath, logger)
			periods, err := store.Load()
			if err != nil {
				return exitWith(exitInvalidInput, fmt.Errorf("loading history: %w", err))
			}

			totals := map[string]schedule.Counter{}
			for _, period := range periods {
				for vetID, c := range period.Stats {
					totals[vetID] = totals[vetID].Add(c)
				}
			}

			return writeJSON("-", map[string]any{
				"periods": len(periods),
				"totals":  totals,
			})
		},
	}
	cmd.Flags().StringVar(&historyPath, "history", "", "path to history JSON (defaults to VETONCALL_HISTORY_PATH)")
	return cmd
}
