package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clinicwatch/vetoncall/internal/config"
	"github.com/clinicwatch/vetoncall/internal/httpserver"
	"github.com/clinicwatch/vetoncall/internal/telemetry"
)

// newRootCmd assembles the vetoncall command tree. Shared process
// wiring (logger, metrics registry, optional metrics HTTP server)
// lives here so every subcommand gets it for free.
func newRootCmd(cfg *config.Config) *cobra.Command {
	var metricsAddr string

	root := &cobra.Command{
		Use:           "vetoncall",
		Short:         "Veterinary on-call scheduling engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve /healthz and /metrics on (disabled if empty)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger := telemetry.NewLogger(cfg.LogFormat, cfg.LogLevel)
		cmd.SetContext(withLogger(cmd.Context(), logger))

		if metricsAddr == "" {
			return nil
		}
		reg := telemetry.NewRegistry()
		srv := httpserver.NewServer(logger, reg)
		httpSrv := &http.Server{Addr: metricsAddr, Handler: srv}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		return nil
	}

	root.AddCommand(newSolveCmd(cfg))
	root.AddCommand(newDiagnoseCmd(cfg))
	root.AddCommand(newHistoryCmd(cfg))
	return root
}

// rootContext returns a context cancelled on SIGINT/SIGTERM, used by
// the long-running solve subcommand.
func rootContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
