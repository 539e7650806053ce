package opts

import (
	"io"

	"github.com/walteh/drivername/pkg/config"
	"github.com/walteh/drivername/pkg/log"
	"github.com/walteh/drivername/pkg/operation"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	UserLogger *log.Logger
	Runner     *operation.OperationRunner
	Stdout     io.Writer
}

// Operation returns the collaborators every operation is built from
func (o *RootOpts) Operation() operation.Options {
	return operation.Options{
		Config:  o.Config,
		Console: o.UserLogger,
		Output:  o.Stdout,
	}
}
