package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gotrs-io/helpdesk-console/internal/models"
	"github.com/gotrs-io/helpdesk-console/internal/views"
)

func newTicketsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket"},
		Short:   "List, create and update tickets",
	}

	var status, search string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := views.NewTicketList(a.client.Tickets, a.cfg.Views.DefaultReporterID, a.logger)
			defer v.Unmount()
			if err := v.Load(cmd.Context()); err != nil {
				return err
			}
			v.SetFilter(views.ParseStatusFilter(status))
			v.SetSearch(search)
			printTickets(a.out, v.Filtered())
			return nil
		},
	}
	listCmd.Flags().StringVar(&status, "status", "all", "status filter: all, OPEN, IN_PROGRESS, RESOLVED or CLOSED")
	listCmd.Flags().StringVar(&search, "search", "", "match title or reporter name")

	var (
		title, description, ticketType, priority string
		reporter                                 int64
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reporter <= 0 {
				reporter = a.cfg.Views.DefaultReporterID
			}
			v := views.NewTicketList(a.client.Tickets, reporter, a.logger)
			defer v.Unmount()
			v.OpenForm()
			v.Form().SetFields(title, description, models.TicketType(ticketType), models.Priority(priority))
			ticket, err := v.Form().Submit(cmd.Context(), nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created ticket #%d\n", ticket.ID)
			printTickets(a.out, []models.Ticket{*ticket})
			return nil
		},
	}
	createCmd.Flags().StringVar(&title, "title", "", "ticket title (required)")
	createCmd.Flags().StringVar(&description, "description", "", "ticket description")
	createCmd.Flags().StringVar(&ticketType, "type", string(models.TypeBug), "BUG, FEATURE, SUPPORT or MAINTENANCE")
	createCmd.Flags().StringVar(&priority, "priority", string(models.PriorityMedium), "LOW, MEDIUM or HIGH")
	createCmd.Flags().Int64Var(&reporter, "reporter", 0, "reporter user id (defaults to views.default_reporter_id)")
	_ = createCmd.MarkFlagRequired("title")

	statusCmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Change a ticket's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}
			if !models.TicketStatus(args[1]).Valid() {
				return fmt.Errorf("invalid status %q", args[1])
			}
			v := views.NewTicketList(a.client.Tickets, a.cfg.Views.DefaultReporterID, a.logger)
			defer v.Unmount()
			ticket, err := v.ChangeStatus(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Ticket #%d is now %s\n", ticket.ID, ticket.Status.Label())
			return nil
		},
	}

	cmd.AddCommand(listCmd, createCmd, statusCmd)
	return cmd
}
