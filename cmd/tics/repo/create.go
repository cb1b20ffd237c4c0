package repo

import (
	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/spf13/cobra"
)

func createCommand() *cobra.Command {
	var ownerEmail string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			user, err := be.User(ctx, ownerEmail)
			if err != nil {
				return err
			}

			r, err := be.CreateRepository(ctx, args[0], user)
			if err != nil {
				return err
			}

			cmd.Println("Created repository", r.Name(), "with id", r.ID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&ownerEmail, "owner", "o", "", "email of the owning user")
	cmd.MarkFlagRequired("owner") // nolint: errcheck

	return cmd
}
