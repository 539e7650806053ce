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

// Package report renders analysis and diagnose results for people (pterm
// tables) and for machines (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/analyze"
)

// Display limits for long lists
const (
	MaxGaps       = 20
	MaxDuplicates = 10
)

// 📄 Stats is the machine readable form of an analysis
type Stats struct {
	Source string `json:"source"`
	Found  bool   `json:"found"`
	*analyze.Report
	Range          int    `json:"range,omitempty"`
	Capacity       int    `json:"capacity,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// NewStats wraps an analysis result. A nil report means no records.
func NewStats(source string, r *analyze.Report) Stats {
	s := Stats{Source: source, Report: r, Found: r != nil}
	if r != nil {
		s.Range = r.Range()
		s.Capacity = r.Capacity()
		s.Recommendation = r.Recommendation()
	}
	return s
}

// 📊 WriteStats renders an analysis as a table followed by the gap and
// duplicate lists
func WriteStats(w io.Writer, source string, r *analyze.Report) error {
	if r == nil {
		return WriteEmpty(w, source)
	}

	data := pterm.TableData{
		{"Metric", "Value"},
		{"Total entries", strconv.Itoa(r.TotalEntries)},
		{"Index range", fmt.Sprintf("%d - %d", r.MinIndex, r.MaxIndex)},
		{"Range size", strconv.Itoa(r.Range())},
		{"Gaps", strconv.Itoa(r.GapCount)},
		{"Duplicate values", strconv.Itoa(len(r.Duplicates))},
	}
	if len(r.RepeatedIndices) > 0 {
		data = append(data, []string{"Repeated indices", JoinInts(r.RepeatedIndices, MaxGaps)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}

	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprintln("Driver name statistics: " + source))
	b.WriteString(table)
	b.WriteString("\n\n")

	if r.Contiguous() {
		b.WriteString(printer(pterm.Success, "✅").Sprintln("No gaps: every index in range is used"))
	} else {
		b.WriteString(printer(pterm.Warning, "⚠️").Sprintln("Gaps: " + joinInts(r.Gaps, MaxGaps, r.GapCount)))
	}

	if len(r.Duplicates) == 0 {
		b.WriteString(printer(pterm.Success, "✅").Sprintln("No duplicate names"))
	} else {
		b.WriteString(printer(pterm.Warning, "⚠️").Sprintln("Duplicate names:"))
		values := r.DuplicateValues()
		for i, value := range values {
			if i == MaxDuplicates {
				fmt.Fprintf(&b, "  ... and %d more\n", len(values)-MaxDuplicates)
				break
			}
			fmt.Fprintf(&b, "  %q at %s\n", value, JoinInts(r.Duplicates[value], 0))
		}
	}

	b.WriteString(printer(pterm.Info, "💡").Sprintln(r.Recommendation()))

	_, err = io.WriteString(w, b.String())
	return err
}

// WriteEmpty reports a document without records
func WriteEmpty(w io.Writer, source string) error {
	_, err := io.WriteString(w, printer(pterm.Error, "❌").Sprintln("No driver names found in "+source))
	return err
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Errorf("encoding json: %w", err)
	}
	return nil
}

// JoinInts renders xs comma separated. With limit > 0 only the first limit
// values are listed and the rest is summarized.
func JoinInts(xs []int, limit int) string {
	return joinInts(xs, limit, len(xs))
}

// joinInts is JoinInts for a list that may already be a prefix of total values
func joinInts(xs []int, limit, total int) string {
	shown := xs
	if limit > 0 && len(xs) > limit {
		shown = xs[:limit]
	}
	parts := make([]string, len(shown))
	for i, x := range shown {
		parts[i] = strconv.Itoa(x)
	}
	out := strings.Join(parts, ", ")
	if len(shown) < total {
		out += fmt.Sprintf(" ... (%d more)", total-len(shown))
	}
	return out
}

func printer(base pterm.PrefixPrinter, icon string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: icon, Style: base.Prefix.Style})
}
