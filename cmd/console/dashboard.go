package main

import (
	"github.com/spf13/cobra"

	"github.com/gotrs-io/helpdesk-console/internal/views"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print dashboard analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := views.NewDashboard(a.client.Dashboard, a.logger)
			defer d.Unmount()
			if err := d.Load(cmd.Context()); err != nil {
				return err
			}
			printDashboard(a.out, d.Snapshot())
			return nil
		},
	}
}
