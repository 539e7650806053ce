package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/archive"
)

// 🩺 Diagnosis is the combined outcome of a packaged mod check
type Diagnosis struct {
	Archive      string               `json:"archive"`
	Layout       archive.Result       `json:"layout"`
	Inspected    string               `json:"inspected,omitempty"` // entry whose content was read
	Content      *archive.Inspection  `json:"content,omitempty"`
	ContentError string               `json:"content_error,omitempty"`
	Expect       archive.Expectations `json:"-"`
}

// OK reports whether the archive layout and content look right
func (d Diagnosis) OK() bool {
	if !d.Layout.OK() || d.ContentError != "" {
		return false
	}
	if d.Content == nil {
		return false
	}
	return d.Content.HasUnitHeader && d.Content.HasNameTable && d.Content.Records > 0
}

// WriteDiagnosis renders a diagnosis as a list of checks
func WriteDiagnosis(w io.Writer, d Diagnosis) error {
	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprintln("Diagnosing " + d.Archive))

	check := func(ok bool, msg string) {
		if ok {
			b.WriteString(printer(pterm.Success, "✅").Sprintln(msg))
		} else {
			b.WriteString(printer(pterm.Error, "❌").Sprintln(msg))
		}
	}

	fmt.Fprintf(&b, "Archive has %d entries\n", d.Layout.Entries)
	check(d.Layout.HasManifest, "manifest: "+nameOr(d.Expect.Manifest, "manifest"))
	check(d.Layout.HasDescription, "description: "+nameOr(d.Expect.Description, "description"))
	check(d.Layout.HasTarget, "driver names: "+nameOr(d.Expect.Target, "target"))

	if len(d.Layout.Targets) > 0 {
		data := pterm.TableData{{"Location", "Expected place"}}
		for _, loc := range d.Layout.Targets {
			data = append(data, []string{loc.Path, strconv.FormatBool(loc.Expected)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Errorf("rendering table: %w", err)
		}
		b.WriteString(table)
		b.WriteString("\n")
	}

	for _, stray := range d.Layout.StrayFiles {
		b.WriteString(printer(pterm.Warning, "⚠️").Sprintln("should not ship: " + stray))
	}

	switch {
	case d.ContentError != "":
		check(false, "content of "+d.Inspected+": "+d.ContentError)
	case d.Content != nil:
		c := d.Content
		fmt.Fprintf(&b, "Content of %s (%s): %d records, %d tagged\n", d.Inspected, c.Encoding, c.Records, c.Tagged)
		for _, rec := range c.Sample {
			fmt.Fprintf(&b, "  %s\n", rec)
		}
		check(c.HasUnitHeader, "SiiNunit header")
		check(c.HasNameTable, "driver_names block")
		check(c.Records > 0, "driver name records")
	}

	if d.OK() {
		b.WriteString(printer(pterm.Success, "🎉").Sprintln("archive looks good"))
	} else {
		b.WriteString(printer(pterm.Error, "💥").Sprintln("archive has problems"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
