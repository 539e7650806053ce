package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/archive"
	"github.com/walteh/drivername/pkg/report"
)

// DiagnoseOperation checks the layout and content of a packaged mod
type DiagnoseOperation struct {
	BaseOperation
	archivePath string
	json        bool
	diagnosis   report.Diagnosis
}

var _ Operation = (*DiagnoseOperation)(nil)

// 📦 NewDiagnoseOperation creates a diagnose operation. An empty path means
// the configured default archive.
func NewDiagnoseOperation(opts Options, archivePath string, asJSON bool) *DiagnoseOperation {
	op := &DiagnoseOperation{
		BaseOperation: NewBaseOperation(opts),
		archivePath:   archivePath,
		json:          asJSON,
	}
	if op.archivePath == "" {
		op.archivePath = op.Config.DefaultArchive
	}
	return op
}

// Diagnosis returns the result of the last Execute
func (op *DiagnoseOperation) Diagnosis() report.Diagnosis {
	return op.diagnosis
}

// 🏃 Execute lists the archive, validates it, inspects the preferred target
// and renders the outcome. Problems are returned as ErrDiagnosisFailed after
// the report is written.
func (op *DiagnoseOperation) Execute(ctx context.Context) error {
	entries, err := archive.ListEntries(ctx, op.archivePath)
	if err != nil {
		return err
	}

	expect := op.Config.Expectations()
	d := report.Diagnosis{
		Archive: op.archivePath,
		Expect:  expect,
		Layout:  archive.Validate(entries, expect),
	}

	target, ok := d.Layout.PreferredTarget()
	if !ok && len(d.Layout.Targets) > 0 {
		target = d.Layout.Targets[0].Path
	}
	if target != "" {
		d.Inspected = target
		if content, err := op.inspect(ctx, target); err != nil {
			d.ContentError = err.Error()
		} else {
			d.Content = content
		}
	}
	op.diagnosis = d

	if op.json {
		err = report.WriteJSON(op.Output, d)
	} else {
		err = report.WriteDiagnosis(op.Output, d)
	}
	if err != nil {
		return errors.Errorf("writing report: %w", err)
	}

	if !d.OK() {
		return errors.Errorf("%w: %s", ErrDiagnosisFailed, op.archivePath)
	}
	return nil
}

func (op *DiagnoseOperation) inspect(ctx context.Context, entry string) (*archive.Inspection, error) {
	raw, err := archive.ReadEntry(ctx, op.archivePath, entry)
	if err != nil {
		return nil, err
	}
	return archive.InspectContent(raw)
}
