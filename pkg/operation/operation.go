// Package operation wires the record engine to files, archives and the
// console. Each command of the CLI is one Operation.
package operation

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/config"
	"github.com/walteh/drivername/pkg/log"
	"github.com/walteh/drivername/pkg/status"
)

// ErrNoRecords is returned by check when a document holds no driver names
var ErrNoRecords = errors.Base("no driver names found")

// ErrDiagnosisFailed is returned by diagnose when the archive has problems
var ErrDiagnosisFailed = errors.Base("archive diagnosis failed")

// 🎯 Operation is one unit of work run by the CLI
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains the collaborators shared by every operation
type Options struct {
	// Config holds the validated configuration; defaults when nil
	Config *config.Config
	// Files reads sources and writes destinations
	Files status.FileManager
	// Progress tracks written files
	Progress status.StatusReporter
	// Console is the user facing logger; discarded when nil
	Console *log.Logger
	// Output receives reports and listings; stdout when nil
	Output io.Writer
}

// 🧱 BaseOperation carries the shared collaborators
type BaseOperation struct {
	Config   *config.Config
	Files    status.FileManager
	Progress status.StatusReporter
	Console  *log.Logger
	Output   io.Writer
}

// NewBaseOperation fills in defaults for any collaborator left unset
func NewBaseOperation(opts Options) BaseOperation {
	base := BaseOperation{
		Config:   opts.Config,
		Files:    opts.Files,
		Progress: opts.Progress,
		Console:  opts.Console,
		Output:   opts.Output,
	}
	if base.Config == nil {
		base.Config = config.Default()
	}
	if base.Files == nil || base.Progress == nil {
		mgr := status.New("")
		if base.Files == nil {
			base.Files = mgr
		}
		if base.Progress == nil {
			base.Progress = mgr
		}
	}
	if base.Console == nil {
		base.Console = log.New(io.Discard, zerolog.Disabled)
	}
	if base.Output == nil {
		base.Output = os.Stdout
	}
	return base
}

// Logger returns the structured logger carried by ctx
func (b *BaseOperation) Logger(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
