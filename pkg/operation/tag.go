package operation

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/drivername/pkg/finder"
	"github.com/walteh/drivername/pkg/log"
	"github.com/walteh/drivername/pkg/sii"
	"github.com/walteh/drivername/pkg/status"
	"github.com/walteh/drivername/pkg/text"
)

// 🏷️ TagOptions select what to tag and where to write it
type TagOptions struct {
	Input  string // source document, or a directory for batch mode
	Output string // destination document, or a directory for batch mode
	DryRun bool   // compute and print changes without writing
}

// 📄 DocumentResult is the outcome for one document
type DocumentResult struct {
	Input    string
	Output   string
	Encoding sii.Encoding
	Rewrite  *text.RewriteResult
	File     status.FileInfo // zero in dry-run mode
}

// TagOperation rewrites every record value of one or more documents
type TagOperation struct {
	BaseOperation
	opts     TagOptions
	rewriter *text.RecordRewriter

	mu      sync.Mutex
	results []DocumentResult
}

var _ Operation = (*TagOperation)(nil)

// 📦 NewTagOperation creates a tag operation using the config's template
func NewTagOperation(opts Options, tag TagOptions) (*TagOperation, error) {
	if tag.Input == "" {
		return nil, errors.Errorf("input is required")
	}
	if tag.Output == "" && !tag.DryRun {
		return nil, errors.Errorf("output is required")
	}

	base := NewBaseOperation(opts)
	tmpl := base.Config.Template()
	if tmpl == nil {
		var err error
		if tmpl, err = text.ParseTemplate(base.Config.Format); err != nil {
			return nil, errors.Errorf("parsing format template: %w", err)
		}
	}

	return &TagOperation{
		BaseOperation: base,
		opts:          tag,
		rewriter:      text.NewTemplateRewriter(tmpl),
	}, nil
}

// Results returns one entry per document that was processed, in input order.
// It is only complete after Run returned without error. After a cancelled
// async Run, workers may still be finishing and Results stays empty until
// Execute itself has returned.
func (op *TagOperation) Results() []DocumentResult {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.results
}

// 🏃 Execute runs the tag operation
func (op *TagOperation) Execute(ctx context.Context) error {
	info, err := os.Stat(op.opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", status.ErrInputNotFound, op.opts.Input)
		}
		return errors.Errorf("stat input: %w", err)
	}

	jobs, err := op.plan(ctx, info.IsDir())
	if err != nil {
		return err
	}

	op.Console.StartBatch(ctx, log.BatchOperation{
		Input:     op.opts.Input,
		Output:    op.opts.Output,
		Format:    op.Config.Format,
		Documents: len(jobs),
	})
	defer op.Console.EndBatch(ctx)

	op.Progress.StartOperation(ctx, len(jobs))
	defer op.Progress.FinishOperation(ctx)

	results := make([]DocumentResult, len(jobs))
	done := make([]bool, len(jobs))
	var processed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(op.Config.Concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := op.tagDocument(gctx, job.input, job.output)
			if err != nil {
				return errors.Errorf("tagging %s: %w", job.input, err)
			}
			results[i] = res
			done[i] = true
			op.Progress.UpdateProgress(gctx, int(processed.Add(1)))
			return nil
		})
	}
	waitErr := g.Wait()

	completed := make([]DocumentResult, 0, len(jobs))
	for i, ok := range done {
		if ok {
			completed = append(completed, results[i])
		}
	}
	op.mu.Lock()
	op.results = completed
	op.mu.Unlock()

	if waitErr != nil {
		return waitErr
	}
	return ctx.Err()
}

type tagJob struct {
	input  string
	output string
}

func (op *TagOperation) plan(ctx context.Context, batch bool) ([]tagJob, error) {
	if !batch {
		out := op.opts.Output
		if fi, err := os.Stat(out); err == nil && fi.IsDir() {
			out = filepath.Join(out, filepath.Base(op.opts.Input))
		}
		return []tagJob{{input: op.opts.Input, output: out}}, nil
	}

	matches, err := finder.Find(ctx, op.opts.Input, op.Config.TargetName)
	if err != nil {
		return nil, errors.Errorf("finding documents: %w", err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("%w: no %s under %s", status.ErrInputNotFound, op.Config.TargetName, op.opts.Input)
	}

	jobs := make([]tagJob, 0, len(matches))
	for _, m := range matches {
		out := ""
		if op.opts.Output != "" {
			out = filepath.Join(op.opts.Output, filepath.FromSlash(m.RelPath))
		}
		jobs = append(jobs, tagJob{input: m.Path, output: out})
	}
	return jobs, nil
}

// tagDocument reads, rewrites and writes one document. The destination is
// only touched once the whole output is known.
func (op *TagOperation) tagDocument(ctx context.Context, input, output string) (DocumentResult, error) {
	logger := op.Logger(ctx)
	res := DocumentResult{Input: input, Output: output}

	raw, err := op.Files.ReadFile(ctx, input)
	if err != nil {
		op.logFailure(ctx, res, err)
		return res, err
	}

	content, enc, err := sii.Decode(raw)
	if err != nil {
		op.logFailure(ctx, res, err)
		return res, err
	}
	res.Encoding = enc

	res.Rewrite = op.rewriter.RewriteText(content)
	logger.Debug().
		Str("input", input).
		Str("encoding", enc.String()).
		Int("found", res.Rewrite.Found).
		Int("modified", res.Rewrite.Modified).
		Msg("rewrote document")

	docOp := log.DocumentOperation{
		Path:     output,
		Encoding: enc.String(),
		Found:    res.Rewrite.Found,
		Modified: res.Rewrite.Modified,
		DryRun:   op.opts.DryRun,
	}
	if docOp.Path == "" {
		docOp.Path = input
	}

	if op.opts.DryRun {
		if res.Rewrite.WasModified() {
			docOp.Status = status.StatusModified.String()
		} else {
			docOp.Status = status.StatusUnchanged.String()
		}
		op.Console.LogDocument(ctx, docOp)
		op.Console.LogChanges(ctx, res.Rewrite.Changes)
		return res, nil
	}

	encoded, err := sii.Encode(res.Rewrite.ModifiedContent, enc)
	if err != nil {
		op.logFailure(ctx, res, err)
		return res, err
	}

	res.File, err = op.Files.WriteFile(ctx, output, encoded)
	if err != nil {
		op.logFailure(ctx, res, err)
		return res, errors.Errorf("writing %s: %w", output, err)
	}

	docOp.Status = res.File.Status.String()
	op.Console.LogDocument(ctx, docOp)
	return res, nil
}

func (op *TagOperation) logFailure(ctx context.Context, res DocumentResult, err error) {
	path := res.Output
	if path == "" {
		path = res.Input
	}
	op.Logger(ctx).Error().Err(err).Str("input", res.Input).Msg("tagging failed")
	op.Console.LogDocument(ctx, log.DocumentOperation{
		Path:   path,
		Status: status.StatusError.String(),
		Failed: true,
	})
}
