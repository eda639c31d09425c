package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gotrs-io/helpdesk-console/internal/models"
	"github.com/gotrs-io/helpdesk-console/internal/views"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
	}

	var search string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := views.NewUserList(a.client.Users, a.logger)
			defer v.Unmount()
			if err := v.Load(cmd.Context()); err != nil {
				return err
			}
			v.SetSearch(search)
			printUsers(a.out, v.Filtered())
			return nil
		},
	}
	listCmd.Flags().StringVar(&search, "search", "", "match name or email")

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			user, err := a.client.Users.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printUsers(a.out, []models.User{*user})
			return nil
		},
	}

	var name, email, role, status string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.client.Users.Create(cmd.Context(), &models.UserCreateRequest{
				Name:   name,
				Email:  email,
				Role:   models.UserRole(role),
				Status: models.UserStatus(status),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created user #%d\n", user.ID)
			printUsers(a.out, []models.User{*user})
			return nil
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "full name (required)")
	createCmd.Flags().StringVar(&email, "email", "", "email address (required)")
	createCmd.Flags().StringVar(&role, "role", string(models.RoleReporter), "AGENT or REPORTER")
	createCmd.Flags().StringVar(&status, "status", string(models.UserActive), "active or inactive")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("email")

	toggleCmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Switch a user between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v := views.NewUserList(a.client.Users, a.logger)
			defer v.Unmount()
			if err := v.Load(cmd.Context()); err != nil {
				return err
			}
			user, err := v.ToggleStatus(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "User #%d is now %s\n", user.ID, user.Status.Label())
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Users.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted user #%d\n", id)
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, toggleCmd, deleteCmd)
	return cmd
}
