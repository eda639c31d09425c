package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gotrs-io/helpdesk-console/internal/config"
	"github.com/gotrs-io/helpdesk-console/internal/gateway"
	"github.com/gotrs-io/helpdesk-console/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what every subcommand needs once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
	client     *gateway.Client
	metrics    *gateway.Metrics
	registry   *prometheus.Registry
	out        io.Writer
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	a.out = cmd.OutOrStdout()
	a.client = gateway.NewClient(&gateway.Config{
		BaseURL:    cfg.Backend.BaseURL,
		HealthPath: cfg.Backend.HealthPath,
		UserAgent:  cfg.Backend.UserAgent,
		Timeout:    cfg.Backend.Timeout,
		RetryCount: cfg.Backend.RetryCount,
		Debug:      cfg.Backend.Debug,
		Metrics:    a.metrics,
		Logger:     a.logger,
	})
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "console",
		Short: "Helpdesk admin console",
		Long: `Helpdesk admin console

Serves the web console for the ticketing backend and offers the same
ticket, user and dashboard operations from the command line.`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file or directory containing config.yaml")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newTicketsCmd(a))
	rootCmd.AddCommand(newUsersCmd(a))
	rootCmd.AddCommand(newDashboardCmd(a))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "console %s\n", rootCmd.Version)
		},
	})
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
