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

package sii

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// recordPattern matches `name[152]: "Felix"`. Values holding a double quote
// never match and stay plain text.
var recordPattern = regexp.MustCompile(`name\[(\d+)\]\s*:\s*"([^"]+)"`)

// 📏 Span is a half-open byte range [Start, End) in the source text
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// 📄 Record is one `name[index]: "value"` entry
type Record struct {
	Index     int    // array index, the driver id
	Value     string // quoted payload without the quotes
	Span      Span   // the whole match
	ValueSpan Span   // the payload between the quotes
}

// String renders the record in its canonical form
func (r Record) String() string {
	return fmt.Sprintf(`name[%d]: "%s"`, r.Index, r.Value)
}

// 📚 RecordSet is the ordered list of records extracted from one document.
// It is never modified after Extract returns it.
type RecordSet struct {
	source  string
	records []Record
}

// Source returns the text the records were extracted from
func (rs RecordSet) Source() string {
	return rs.source
}

// Len returns the number of records
func (rs RecordSet) Len() int {
	return len(rs.records)
}

// Empty reports whether no record matched
func (rs RecordSet) Empty() bool {
	return len(rs.records) == 0
}

// At returns the i-th record in source order
func (rs RecordSet) At(i int) Record {
	return rs.records[i]
}

// Records returns a copy of the records in source order
func (rs RecordSet) Records() []Record {
	return slices.Clone(rs.records)
}

// Indices returns the record indices in source order
func (rs RecordSet) Indices() []int {
	out := make([]int, len(rs.records))
	for i, rec := range rs.records {
		out[i] = rec.Index
	}
	return out
}

// 🔍 Extract scans text for records. Anything that does not match exactly,
// including indices too large for an int, is left alone.
func Extract(text string) RecordSet {
	locs := recordPattern.FindAllStringSubmatchIndex(text, -1)

	records := make([]Record, 0, len(locs))
	for _, loc := range locs {
		index, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		records = append(records, Record{
			Index:     index,
			Value:     text[loc[4]:loc[5]],
			Span:      Span{Start: loc[0], End: loc[1]},
			ValueSpan: Span{Start: loc[4], End: loc[5]},
		})
	}

	return RecordSet{source: text, records: records}
}
