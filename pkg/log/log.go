// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/drivername/pkg/text"
)

// 🎨 Display configuration
const (
	fileIndent     = 4  // spaces to indent document entries
	changeIndent   = 6  // spaces to indent record changes
	nameWidth      = 35 // Base width for the document path
	encodingWidth  = 10 // Width for the encoding
	statusWidth    = 12 // Width for status text
	maxChangeLines = 50 // record changes printed per document before eliding
)

// 🎯 DocumentOperation is one tagged document, for logging
type DocumentOperation struct {
	Path     string // Destination path
	Encoding string // utf-8, utf-16le, ...
	Status   string // new, modified, unchanged, ...
	Found    int    // Records found
	Modified int    // Records rewritten
	DryRun   bool   // Nothing was written
	Failed   bool   // The document could not be processed
}

// 📦 BatchOperation describes a tag run over one or more documents
type BatchOperation struct {
	Input     string // Source file or directory
	Output    string // Destination file or directory
	Format    string // Format template
	Documents int    // Number of documents in the run
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *BatchOperation
	documents []DocumentOperation
}

// 🏭 New creates a new logger. Structured output goes to stderr so that
// console output can be piped.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatDocument formats a document operation for display
func (l *Logger) formatDocument(op DocumentOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.DryRun:
		symbol = '?'
		symbolColor = color.FgYellow
	case op.Status == "new":
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.Status == "modified":
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	status := op.Status
	if op.DryRun {
		status = "dry run"
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", encodingWidth, op.Encoding)),
		fmt.Sprintf("%-*s", statusWidth, status),
		fmt.Sprintf("%d found, %d tagged, %d already tagged", op.Found, op.Modified, op.Found-op.Modified))
}

// 📝 LogDocument logs a tagged document
func (l *Logger) LogDocument(ctx context.Context, op DocumentOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.documents = append(l.documents, op)

	fmt.Fprintln(l.console, l.formatDocument(op))

	l.zlog.Info().
		Str("path", op.Path).
		Str("encoding", op.Encoding).
		Str("status", op.Status).
		Int("found", op.Found).
		Int("modified", op.Modified).
		Bool("dry_run", op.DryRun).
		Bool("failed", op.Failed).
		Msg("document")
}

// 📝 LogChanges prints the record rewrites of one document, eliding the
// tail of long lists
func (l *Logger) LogChanges(ctx context.Context, changes []text.Change) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, ch := range changes {
		if i == maxChangeLines {
			fmt.Fprintf(l.console, "%*s%s\n", changeIndent, "",
				color.New(color.Faint).Sprintf("... and %d more", len(changes)-maxChangeLines))
			break
		}
		fmt.Fprintf(l.console, "%*s%s %s %s %s\n", changeIndent, "",
			color.New(color.Faint).Sprintf("name[%d]:", ch.Index),
			color.New(color.FgRed).Sprintf("%q", ch.Old),
			color.New(color.Faint).Sprint("→"),
			color.New(color.FgGreen).Sprintf("%q", ch.New))
	}

	l.zlog.Debug().Int("changes", len(changes)).Msg("record changes")
}

// 📝 StartBatch starts a new tag run
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.documents = nil

	fmt.Fprintf(l.console, "[tagging %s]\n",
		color.New(color.FgCyan).Sprint(op.Output))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Input),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Format))

	l.zlog.Info().
		Str("input", op.Input).
		Str("output", op.Output).
		Str("format", op.Format).
		Int("documents", op.Documents).
		Msg("starting tag run")
}

// 📝 EndBatch ends the current tag run
func (l *Logger) EndBatch(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	found, modified, failed := 0, 0, 0
	for _, d := range l.documents {
		found += d.Found
		modified += d.Modified
		if d.Failed {
			failed++
		}
	}

	l.zlog.Info().
		Str("input", l.currentOp.Input).
		Int("documents", len(l.documents)).
		Int("failed", failed).
		Int("found", found).
		Int("modified", modified).
		Msg("tag run complete")

	l.currentOp = nil
	l.documents = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("drivername")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// Console returns the writer user-facing output goes to
func (l *Logger) Console() io.Writer {
	return l.console
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
