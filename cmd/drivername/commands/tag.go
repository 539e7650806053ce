package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/cmd/drivername/opts"
	"github.com/walteh/drivername/pkg/operation"
)

// NewTagCmd creates a new tag command
func NewTagCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		format      string
		dryRun      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "tag <input> <output> [format]",
		Short: "Prefix every driver name with its index",
		Long: `Tag rewrites every name[INDEX]: "VALUE" record so that the value carries
its index, e.g. name[152]: "Felix" becomes name[152]: "152 - Felix".

Values that already carry an index are left alone, so tagging twice gives
the same result as tagging once. Everything outside the records is copied
byte for byte.

If input is a directory, every driver_names.sii below it is tagged into the
same relative path under output.

The format may use {index} and {name} and needs at least one of them; the
default is "{index} - {name}". A value already in the format's own shape,
with its own index in every {index}, counts as tagged.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input := args[0]
			output := ""
			if len(args) > 1 {
				output = args[1]
			}
			if len(args) > 2 {
				format = args[2]
			}
			if output == "" && !dryRun {
				return errors.Errorf("output is required unless --dry-run is set")
			}

			cfg := *ro.Config
			if format != "" {
				cfg.Format = format
			}
			if concurrency > 0 {
				cfg.Concurrency = concurrency
			}
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating flags: %w", err)
			}

			options := ro.Operation()
			options.Config = &cfg

			op, err := operation.NewTagOperation(options, operation.TagOptions{
				Input:  input,
				Output: output,
				DryRun: dryRun,
			})
			if err != nil {
				return errors.Errorf("creating tag operation: %w", err)
			}

			ro.UserLogger.Header("tagging driver names")
			if err := ro.Runner.Run(ctx, op); err != nil {
				return errors.Errorf("tagging: %w", err)
			}

			found, modified := 0, 0
			for _, res := range op.Results() {
				found += res.Rewrite.Found
				modified += res.Rewrite.Modified
			}

			switch {
			case found == 0:
				ro.UserLogger.Warning("no driver name records found")
			case dryRun:
				ro.UserLogger.Infof("dry run: %d of %d records would be tagged", modified, found)
			default:
				ro.UserLogger.Successf("tagged %d records (%d already tagged)", modified, found-modified)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "format template, overrides the config")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the changes without writing")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "documents tagged in parallel in directory mode")

	return cmd
}
