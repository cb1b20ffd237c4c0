package repo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Hafiz-shamnad/TicsLab/cmd"
	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/spf13/cobra"
)

// Command returns a command for managing repositories.
var Command = &cobra.Command{
	Use:                "repo",
	Aliases:            []string{"repos", "repository", "repositories"},
	Short:              "Manage repositories",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	Command.AddCommand(
		collabCommand(),
		createCommand(),
		filesCommand(),
		listCommand(),
		versionsCommand(),
	)
}

func parseRepoID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid repository id %q", proto.ErrInvalidInput, s)
	}
	return id, nil
}

// owner returns a repository and its owner. Commands act as the owner,
// who always holds the admin role.
func owner(ctx context.Context, be *backend.Backend, arg string) (proto.Repository, proto.User, error) {
	id, err := parseRepoID(arg)
	if err != nil {
		return nil, nil, err
	}

	r, err := be.Repository(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	u, err := be.UserByID(ctx, r.UserID())
	if err != nil {
		return nil, nil, err
	}

	return r, u, nil
}
