package repo

import (
	"strconv"

	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/caarlos0/tablewriter"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// shortDigest is the digest prefix shown in tables.
func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

func filesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files REPO_ID",
		Short: "List the files of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(co *cobra.Command, args []string) error {
			ctx := co.Context()
			be := backend.FromContext(ctx)
			r, user, err := owner(ctx, be, args[0])
			if err != nil {
				return err
			}

			files, err := be.ListFiles(ctx, r.ID(), user)
			if err != nil {
				return err
			}

			if len(files) == 0 {
				co.Println("No files found")
				return nil
			}

			return tablewriter.Render(
				co.OutOrStdout(),
				files,
				[]string{"File", "Latest", "Versions", "Digest", "Uploaded"},
				func(f proto.File) ([]string, error) {
					return []string{
						f.Filename,
						strconv.FormatInt(f.LatestVersion, 10),
						strconv.FormatInt(f.VersionCount, 10),
						shortDigest(f.LatestDigest),
						humanize.Time(f.LatestUploadedAt),
					}, nil
				},
			)
		},
	}
}

func versionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions REPO_ID FILENAME",
		Short: "List the versions of a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(co *cobra.Command, args []string) error {
			ctx := co.Context()
			be := backend.FromContext(ctx)
			r, user, err := owner(ctx, be, args[0])
			if err != nil {
				return err
			}

			versions, err := be.ListVersions(ctx, r.ID(), args[1], user)
			if err != nil {
				return err
			}

			return tablewriter.Render(
				co.OutOrStdout(),
				versions,
				[]string{"Version", "Size", "Digest", "Uploaded", "Description"},
				func(v proto.Version) ([]string, error) {
					return []string{
						strconv.FormatInt(v.Version, 10),
						humanize.Bytes(uint64(v.Size)), //nolint:gosec
						shortDigest(v.Digest),
						humanize.Time(v.UploadedAt),
						v.Description,
					}, nil
				},
			)
		},
	}
}
