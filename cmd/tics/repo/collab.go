package repo

import (
	"github.com/Hafiz-shamnad/TicsLab/pkg/access"
	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/caarlos0/tablewriter"
	"github.com/spf13/cobra"
)

func collabCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collab",
		Aliases: []string{"collabs", "collaborator", "collaborators"},
		Short:   "Manage collaborators",
	}

	cmd.AddCommand(
		collabAddCommand(),
		collabListCommand(),
	)

	return cmd
}

func collabAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add REPO_ID EMAIL [read|write|admin]",
		Short: "Add a collaborator to a repository",
		Long:  "Add a collaborator to a repository. The role defaults to read.",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(co *cobra.Command, args []string) error {
			ctx := co.Context()
			be := backend.FromContext(ctx)
			r, actor, err := owner(ctx, be, args[0])
			if err != nil {
				return err
			}

			level := access.ReadAccess
			if len(args) > 2 {
				level = access.ParseAccessLevel(args[2])
			}

			c, err := be.AddCollaborator(ctx, r.ID(), actor, args[1], level)
			if err != nil {
				return err
			}

			co.Println("Added", c.Email, "to", r.Name(), "as", c.AccessLevel)
			return nil
		},
	}

	return cmd
}

func collabListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list REPO_ID",
		Aliases: []string{"ls"},
		Short:   "List collaborators of a repository",
		Args:    cobra.ExactArgs(1),
		RunE: func(co *cobra.Command, args []string) error {
			ctx := co.Context()
			be := backend.FromContext(ctx)
			id, err := parseRepoID(args[0])
			if err != nil {
				return err
			}

			if _, err := be.Repository(ctx, id); err != nil {
				return err
			}

			collabs, err := be.Collaborators(ctx, id)
			if err != nil {
				return err
			}

			return tablewriter.Render(
				co.OutOrStdout(),
				collabs,
				[]string{"Email", "Role"},
				func(c proto.Collaborator) ([]string, error) {
					return []string{c.Email, c.AccessLevel.String()}, nil
				},
			)
		},
	}

	return cmd
}
