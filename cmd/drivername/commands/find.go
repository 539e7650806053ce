package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/drivername/cmd/drivername/opts"
	"github.com/walteh/drivername/pkg/operation"
)

// NewFindCmd creates a new find command
func NewFindCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [dir]",
		Short: "List driver_names.sii files under a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return ro.Runner.Run(cmd.Context(), operation.NewFindOperation(ro.Operation(), root))
		},
	}

	return cmd
}
