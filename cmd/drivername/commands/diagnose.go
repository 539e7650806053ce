package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/drivername/cmd/drivername/opts"
	"github.com/walteh/drivername/pkg/operation"
)

// NewDiagnoseCmd creates a new diagnose command
func NewDiagnoseCmd(ro *opts.RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "diagnose [mod.scs]",
		Short: "Check a packaged mod archive",
		Long: `Diagnose opens a packaged mod (a zip archive) and checks that:
1. manifest.sii, desc.txt and driver_names.sii are present
2. driver_names.sii sits under universal/locale
3. No documentation or example files are shipped
4. The driver names file decodes and has the SII structure

Without an argument the configured default archive is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			op := operation.NewDiagnoseOperation(ro.Operation(), path, asJSON)
			return ro.Runner.Run(cmd.Context(), op)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the diagnosis as JSON")

	return cmd
}
