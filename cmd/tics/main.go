package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Hafiz-shamnad/TicsLab/cmd/tics/admin"
	"github.com/Hafiz-shamnad/TicsLab/cmd/tics/repo"
	"github.com/Hafiz-shamnad/TicsLab/cmd/tics/serve"
	"github.com/Hafiz-shamnad/TicsLab/cmd/tics/user"
	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
	tlog "github.com/Hafiz-shamnad/TicsLab/pkg/log"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	rootCmd = &cobra.Command{
		Use:          "tics",
		Short:        "A versioned file server for teams",
		Long:         "TicsLab keeps every uploaded version of a file, per repository, with per-collaborator roles.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(
		manCmd,
		serve.Command,
		admin.Command,
		user.Command,
		repo.Command,
	)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

// loadConfig reads the config file, writing a default one with a fresh
// token secret on first run, then applies the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.ParseFile(); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	} else {
		secret, err := config.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.Auth.JWTSecret = secret
		if err := cfg.WriteConfig(); err != nil {
			return nil, fmt.Errorf("write config file: %w", err)
		}
	}

	if err := cfg.ParseEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	cfg, err := loadConfig()
	if err != nil {
		log.Error("failed to load config", "err", err)
		return 1
	}

	logger, f, err := tlog.NewLogger(cfg)
	if err != nil {
		log.Error("failed to create logger", "err", err)
		return 1
	}
	if f != nil {
		defer f.Close() // nolint: errcheck
	}

	log.SetDefault(logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	ctx = config.WithContext(ctx, cfg)
	ctx = log.WithContext(ctx, logger)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
