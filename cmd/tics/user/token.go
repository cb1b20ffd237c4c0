package user

import (
	"time"

	"github.com/Hafiz-shamnad/TicsLab/pkg/backend"
	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	"github.com/caarlos0/duration"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	var expiresIn string
	cmd := &cobra.Command{
		Use:   "token EMAIL",
		Short: "Issue an access token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			if config.FromContext(ctx).Auth.JWTSecret == "" {
				return config.ErrMissingJWTSecret
			}

			var ttl time.Duration
			if expiresIn != "" {
				d, err := duration.Parse(expiresIn)
				if err != nil {
					return err
				}
				ttl = d
			}

			user, err := be.User(ctx, args[0])
			if err != nil {
				return err
			}

			token, expiresAt, err := be.GenerateAccessToken(user, ttl)
			if err != nil {
				return err
			}

			cmd.PrintErrln("Access token created (expires " + humanize.Time(expiresAt) + ")")
			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&expiresIn, "expires-in", "", "token lifetime (e.g. 1y, 3mo, 2w, 5d4h, 1h30m), defaults to the configured lifetime")

	Command.AddCommand(cmd)
}
