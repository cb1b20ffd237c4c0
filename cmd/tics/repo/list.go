package repo

import (
	"strconv"

	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/caarlos0/tablewriter"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// listCommand returns a command that lists repositories.
func listCommand() *cobra.Command {
	var userEmail string

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List repositories",
		Args:    cobra.NoArgs,
		RunE: func(co *cobra.Command, _ []string) error {
			ctx := co.Context()
			be := backend.FromContext(ctx)

			var (
				repos []proto.Repository
				err   error
			)
			if userEmail != "" {
				var user proto.User
				user, err = be.User(ctx, userEmail)
				if err != nil {
					return err
				}
				repos, err = be.UserRepositories(ctx, user)
			} else {
				repos, err = be.Repositories(ctx)
			}
			if err != nil {
				return err
			}

			if len(repos) == 0 {
				co.Println("No repositories found")
				return nil
			}

			return tablewriter.Render(
				co.OutOrStdout(),
				repos,
				[]string{"ID", "Name", "Owner", "Created"},
				func(r proto.Repository) ([]string, error) {
					return []string{
						strconv.FormatInt(r.ID(), 10),
						r.Name(),
						r.OwnerEmail(),
						humanize.Time(r.CreatedAt()),
					}, nil
				},
			)
		},
	}

	listCmd.Flags().StringVarP(&userEmail, "user", "u", "", "only list repositories this user collaborates on")

	return listCmd
}
