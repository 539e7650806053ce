package operation

import (
	"context"
	"fmt"

	"github.com/walteh/drivername/pkg/finder"
)

// FindOperation lists every driver name table under a directory
type FindOperation struct {
	BaseOperation
	root    string
	matches []finder.Match
}

var _ Operation = (*FindOperation)(nil)

// 📦 NewFindOperation creates a find operation rooted at root
func NewFindOperation(opts Options, root string) *FindOperation {
	if root == "" {
		root = "."
	}
	return &FindOperation{
		BaseOperation: NewBaseOperation(opts),
		root:          root,
	}
}

// Matches returns what the last Execute found
func (op *FindOperation) Matches() []finder.Match {
	return op.matches
}

// 🏃 Execute prints one absolute path per line to Output
func (op *FindOperation) Execute(ctx context.Context) error {
	matches, err := finder.Find(ctx, op.root, op.Config.TargetName)
	if err != nil {
		return err
	}
	op.matches = matches

	if len(matches) == 0 {
		op.Console.Warningf("no %s found under %s", op.Config.TargetName, op.root)
		return nil
	}

	for _, m := range matches {
		if _, err := fmt.Fprintln(op.Output, m.Path); err != nil {
			return err
		}
		if loc := m.Locale(); loc != "" {
			op.Logger(ctx).Debug().Str("path", m.RelPath).Str("locale", loc).Msg("found locale table")
		}
	}
	op.Console.Successf("found %d %s file(s)", len(matches), op.Config.TargetName)
	return nil
}
