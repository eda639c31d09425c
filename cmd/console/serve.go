package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/gotrs-io/helpdesk-console/internal/config"
	"github.com/gotrs-io/helpdesk-console/internal/gateway"
	"github.com/gotrs-io/helpdesk-console/internal/logger"
	"github.com/gotrs-io/helpdesk-console/internal/views"
	"github.com/gotrs-io/helpdesk-console/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		// The gateway client is built with metrics attached.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.registry = prometheus.NewRegistry()
			a.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			a.metrics = gateway.NewMetrics(a.registry)
			return a.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	a.logger.Info().Str("backend", a.client.BaseURL()).Msg("starting console")

	mounted := views.NewRegistry(views.RegistryConfig{
		MaxMounted: a.cfg.Views.MaxMounted,
		IdleTTL:    a.cfg.Views.IdleTTL,
		Logger:     a.logger,
	})
	defer mounted.Close()
	if err := mounted.StartSweeper(a.cfg.Views.SweepSchedule); err != nil {
		return err
	}

	if a.configPath != "" {
		err := config.Watch(a.configPath, func(c *config.Config) {
			logger.SetLevel(c.Logging.Level)
			a.logger.Info().Str("level", c.Logging.Level).Msg("configuration reloaded")
		}, func(err error) {
			a.logger.Warn().Err(err).Msg("configuration reload rejected")
		})
		if err != nil {
			a.logger.Warn().Err(err).Msg("config hot reload disabled")
		}
	}

	srv, err := web.NewServer(web.Deps{
		Config:     a.cfg,
		Tickets:    a.client.Tickets,
		Users:      a.client.Users,
		Analytics:  a.client.Dashboard,
		Backend:    a.client,
		Registry:   mounted,
		Logger:     a.logger,
		Registerer: a.registry,
		Gatherer:   a.registry,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
