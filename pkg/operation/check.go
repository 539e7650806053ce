package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/analyze"
	"github.com/walteh/drivername/pkg/report"
	"github.com/walteh/drivername/pkg/sii"
)

// CheckOperation analyzes one document and prints its statistics
type CheckOperation struct {
	BaseOperation
	path   string
	json   bool
	report *analyze.Report
}

var _ Operation = (*CheckOperation)(nil)

// 📦 NewCheckOperation creates a check operation for path
func NewCheckOperation(opts Options, path string, asJSON bool) *CheckOperation {
	return &CheckOperation{
		BaseOperation: NewBaseOperation(opts),
		path:          path,
		json:          asJSON,
	}
}

// Report returns the analysis, or nil when nothing was found
func (op *CheckOperation) Report() *analyze.Report {
	return op.report
}

// 🏃 Execute reads, analyzes and renders. A document without records is
// reported and then returned as ErrNoRecords.
func (op *CheckOperation) Execute(ctx context.Context) error {
	raw, err := op.Files.ReadFile(ctx, op.path)
	if err != nil {
		return err
	}

	content, enc, err := sii.Decode(raw)
	if err != nil {
		return err
	}

	r, ok := analyze.AnalyzeText(content)
	op.report = r

	logger := op.Logger(ctx)
	logger.Debug().Str("path", op.path).Str("encoding", enc.String()).Bool("found", ok).Msg("analyzed document")

	if op.json {
		err = report.WriteJSON(op.Output, report.NewStats(op.path, r))
	} else {
		err = report.WriteStats(op.Output, op.path, r)
	}
	if err != nil {
		return errors.Errorf("writing report: %w", err)
	}

	if !ok {
		return errors.Errorf("%w in %s", ErrNoRecords, op.path)
	}
	return nil
}
