package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/cmd/drivername/commands"
	"github.com/walteh/drivername/cmd/drivername/opts"
	"github.com/walteh/drivername/pkg/config"
	"github.com/walteh/drivername/pkg/log"
	"github.com/walteh/drivername/pkg/operation"
)

// rootFlags are shared by every command
type rootFlags struct {
	configFile string
	envFile    string
	debug      bool
}

// newRootCmd builds the command tree. Reports and listings go to stdout,
// user messages and logs to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	ro := &opts.RootOpts{Stdout: stdout}

	cmd := &cobra.Command{
		Use:   "drivername",
		Short: "Tag and check the driver names of a truck simulator mod",
		Long: `drivername rewrites the name[INDEX]: "VALUE" records of a driver_names.sii
file so that every hired driver shows its index, and checks the file and
the packaged mod for common mistakes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := setupRootOpts(cmd.Context(), flags, ro, stderr)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewTagCmd(ro),
		commands.NewCheckCmd(ro),
		commands.NewFindCmd(ro),
		commands.NewDiagnoseCmd(ro),
		newVersionCmd(stdout),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .drivername.{yaml,yml,hcl,json} if present)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file with DRIVERNAME_* overrides")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupRootOpts initializes logging and loads the configuration
func setupRootOpts(ctx context.Context, flags *rootFlags, ro *opts.RootOpts, stderr io.Writer) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = setupLogging(ctx, flags.debug, stderr)

	level := zerolog.Disabled
	if flags.debug {
		level = zerolog.DebugLevel
	}
	ro.UserLogger = log.New(stderr, level)
	ctx = log.NewContext(ctx, ro.UserLogger)

	if err := config.LoadDotEnv(ctx, flags.envFile); err != nil {
		return nil, errors.Errorf("loading env file: %w", err)
	}

	var err error
	if flags.configFile != "" {
		ro.Config, err = config.Load(ctx, flags.configFile)
	} else {
		ro.Config, err = config.Discover(ctx, ".")
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("config", ro.Config.String()).Str("location", ro.Config.Location()).Msg("configuration loaded")

	ro.Runner = operation.NewRunner(zerolog.Ctx(ctx), true)
	return ctx, nil
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool, stderr io.Writer) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
