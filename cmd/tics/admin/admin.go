package admin

import (
	"fmt"
	"strconv"

	"github.com/Hafiz-shamnad/TicsLab/cmd"
	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db"
	"github.com/Hafiz-shamnad/TicsLab/pkg/db/migrate"
	"github.com/caarlos0/tablewriter"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	// Command is the admin command.
	Command = &cobra.Command{
		Use:   "admin",
		Short: "Administrate the server",
	}

	migrateCmd = &cobra.Command{
		Use:                "migrate",
		Short:              "Migrate the database to the latest version",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db := db.FromContext(ctx)
			if err := migrate.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration: %w", err)
			}

			return nil
		},
	}

	rollbackCmd = &cobra.Command{
		Use:                "rollback",
		Short:              "Rollback the database to the previous version",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db := db.FromContext(ctx)
			if err := migrate.Rollback(ctx, db); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}

			return nil
		},
	}

	verifyCmd = &cobra.Command{
		Use:                "verify [REPO_ID]",
		Short:              "Check that every recorded version has its file on disk",
		Args:               cobra.MaximumNArgs(1),
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			var repoID int64
			if len(args) > 0 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid repository id %q", args[0])
				}
				repoID = id
			}

			issues, err := be.Verify(ctx, repoID)
			if err != nil {
				return err
			}

			if len(issues) == 0 {
				c.Println("No integrity issues found")
				return nil
			}

			if err := tablewriter.Render(
				c.OutOrStdout(),
				issues,
				[]string{"Repo", "File", "Version", "Size", "Problem"},
				func(i backend.IntegrityIssue) ([]string, error) {
					return []string{
						strconv.FormatInt(i.RepoID, 10),
						i.Filename,
						strconv.FormatInt(i.Version, 10),
						humanize.Bytes(uint64(i.Size)), //nolint:gosec
						i.Problem,
					}, nil
				},
			); err != nil {
				return err
			}

			return fmt.Errorf("%d integrity issues found", len(issues))
		},
	}
)

func init() {
	Command.AddCommand(
		migrateCmd,
		rollbackCmd,
		verifyCmd,
	)
}
