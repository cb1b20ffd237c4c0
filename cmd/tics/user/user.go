package user

import (
	"fmt"
	"strconv"

	"github.com/Hafiz-shamnad/TicsLab/cmd"
	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/caarlos0/tablewriter"
	"github.com/spf13/cobra"
)

// Command is the user subcommand.
var Command = &cobra.Command{
	Use:                "user",
	Aliases:            []string{"users"},
	Short:              "Manage users",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	var name, password string
	userCreateCommand := &cobra.Command{
		Use:   "create EMAIL",
		Short: "Create a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			if len(password) < 8 {
				return fmt.Errorf("%w: password must be at least 8 characters", proto.ErrInvalidInput)
			}

			u, err := be.CreateUser(ctx, args[0], proto.UserOptions{
				FullName: name,
				Password: password,
			})
			if err != nil {
				return err
			}

			cmd.Println("Created user", u.Email(), "with id", u.ID())
			return nil
		},
	}

	userCreateCommand.Flags().StringVarP(&name, "name", "n", "", "full name of the user")
	userCreateCommand.Flags().StringVarP(&password, "password", "p", "", "password of at least 8 characters")
	userCreateCommand.MarkFlagRequired("password") // nolint: errcheck

	userListCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			users, err := be.Users(ctx)
			if err != nil {
				return err
			}

			if len(users) == 0 {
				cmd.Println("No users found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				users,
				[]string{"ID", "Email", "Name", "Active"},
				func(u proto.User) ([]string, error) {
					return []string{
						strconv.FormatInt(u.ID(), 10),
						u.Email(),
						u.FullName(),
						strconv.FormatBool(u.IsActive()),
					}, nil
				},
			)
		},
	}

	userActivateCommand := &cobra.Command{
		Use:   "activate EMAIL",
		Short: "Allow a user to log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return backend.FromContext(ctx).SetUserActive(ctx, args[0], true)
		},
	}

	userDeactivateCommand := &cobra.Command{
		Use:   "deactivate EMAIL",
		Short: "Prevent a user from logging in",
		Long:  "Prevent a user from logging in. Tokens already issued stop working too.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return backend.FromContext(ctx).SetUserActive(ctx, args[0], false)
		},
	}

	Command.AddCommand(
		userCreateCommand,
		userListCommand,
		userActivateCommand,
		userDeactivateCommand,
	)
}
