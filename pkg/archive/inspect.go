package archive

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/sii"
	"github.com/walteh/drivername/pkg/text"
)

// SampleSize is how many records Inspection keeps for display
const SampleSize = 5

// 🔬 Inspection summarizes the content of a packaged driver name table
type Inspection struct {
	Encoding      string       `json:"encoding"`
	Records       int          `json:"records"`
	Tagged        int          `json:"tagged"`
	Sample        []sii.Record `json:"sample"`
	HasUnitHeader bool         `json:"has_unit_header"` // SiiNunit
	HasNameTable  bool         `json:"has_name_table"`  // driver_names block
}

// FullyTagged reports whether every record already carries its index
func (i Inspection) FullyTagged() bool {
	return i.Records > 0 && i.Tagged == i.Records
}

// InspectContent decodes raw and reports what it finds. It never modifies
// the data.
func InspectContent(raw []byte) (*Inspection, error) {
	content, enc, err := sii.Decode(raw)
	if err != nil {
		return nil, errors.Errorf("decoding content: %w", err)
	}

	rs := sii.Extract(content)
	records := rs.Records()

	ins := &Inspection{
		Encoding:      enc.String(),
		Records:       len(records),
		Sample:        records[:min(SampleSize, len(records))],
		HasUnitHeader: strings.Contains(content, "SiiNunit"),
		HasNameTable:  strings.Contains(content, "driver_names"),
	}
	for _, r := range records {
		if text.IsTagged(r.Value) {
			ins.Tagged++
		}
	}
	return ins, nil
}
