package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/drivername/cmd/drivername/opts"
	"github.com/walteh/drivername/pkg/operation"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(ro *opts.RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Show index range, gaps and duplicate names",
		Long: `Check reads a driver_names.sii file and reports:
1. The lowest and highest index and how many records there are
2. Indices in that range without a record
3. Names used at more than one index

The command exits non-zero when the file has no driver names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := operation.NewCheckOperation(ro.Operation(), args[0], asJSON)
			return ro.Runner.Run(cmd.Context(), op)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the statistics as JSON")

	return cmd
}
