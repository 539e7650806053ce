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

// Package analyze derives index statistics from a driver name table.
package analyze

import (
	"fmt"
	"math"
	"slices"

	"github.com/walteh/drivername/pkg/sii"
)

// Recommendation thresholds on the highest index
const (
	PlentyThreshold = 500
	EnoughThreshold = 300
)

// MaxListedGaps bounds how many gap indices a report lists. GapCount is
// always exact.
const MaxListedGaps = 10000

// 📊 Report holds the statistics for one document
type Report struct {
	MinIndex     int `json:"min_index"`
	MaxIndex     int `json:"max_index"`
	TotalEntries int `json:"total_entries"`

	// Gaps are the indices in [MinIndex, MaxIndex] that no record uses,
	// sorted. At most MaxListedGaps are listed.
	Gaps []int `json:"gaps"`

	// GapCount is the number of unused indices in [MinIndex, MaxIndex]
	GapCount int `json:"gap_count"`

	// Duplicates maps a value used at two or more distinct indices to those
	// indices, sorted
	Duplicates map[string][]int `json:"duplicates"`

	// RepeatedIndices are indices that appear in more than one record, sorted
	RepeatedIndices []int `json:"repeated_indices,omitempty"`

	// Names maps an index to its value; the last record wins
	Names map[int]string `json:"-"`
}

// Range returns the size of the index interval, saturating at math.MaxInt
func (r *Report) Range() int {
	return saturatingInc(r.MaxIndex - r.MinIndex)
}

// Capacity returns how many drivers can be hired before names wrap around,
// saturating at math.MaxInt
func (r *Report) Capacity() int {
	return saturatingInc(r.MaxIndex)
}

// Contiguous reports whether there are no gaps
func (r *Report) Contiguous() bool {
	return r.GapCount == 0
}

// GapsTruncated reports whether Gaps lists fewer than GapCount indices
func (r *Report) GapsTruncated() bool {
	return len(r.Gaps) < r.GapCount
}

// indices are non-negative, so max-min never overflows; only the +1 can
func saturatingInc(n int) int {
	if n == math.MaxInt {
		return n
	}
	return n + 1
}

// Recommendation returns advice about the table size
func (r *Report) Recommendation() string {
	switch {
	case r.MaxIndex >= PlentyThreshold:
		return fmt.Sprintf("You have plenty of names (%d entries) - unlikely to run out!", r.Capacity())
	case r.MaxIndex >= EnoughThreshold:
		return fmt.Sprintf("You have %d names - should be enough for most players", r.Capacity())
	default:
		return fmt.Sprintf("You have %d names - if you hire more drivers, names may wrap around", r.Capacity())
	}
}

// 🔍 Analyze computes the report for rs. ok is false when rs holds no
// records, which is a normal outcome rather than an error.
func Analyze(rs sii.RecordSet) (report *Report, ok bool) {
	if rs.Empty() {
		return nil, false
	}

	records := rs.Records()

	report = &Report{
		MinIndex:     records[0].Index,
		MaxIndex:     records[0].Index,
		TotalEntries: len(records),
		Gaps:         []int{},
		Duplicates:   map[string][]int{},
		Names:        make(map[int]string, len(records)),
	}

	seen := make(map[int]int, len(records))
	byValue := map[string][]int{}
	for _, rec := range records {
		report.MinIndex = min(report.MinIndex, rec.Index)
		report.MaxIndex = max(report.MaxIndex, rec.Index)
		report.Names[rec.Index] = rec.Value

		seen[rec.Index]++
		byValue[rec.Value] = append(byValue[rec.Value], rec.Index)
	}

	distinct := make([]int, 0, len(seen))
	for index := range seen {
		distinct = append(distinct, index)
	}
	slices.Sort(distinct)
	report.Gaps, report.GapCount = gaps(distinct, MaxListedGaps)

	for value, indices := range byValue {
		slices.Sort(indices)
		indices = slices.Compact(indices)
		if len(indices) > 1 {
			report.Duplicates[value] = indices
		}
	}

	for index, count := range seen {
		if count > 1 {
			report.RepeatedIndices = append(report.RepeatedIndices, index)
		}
	}
	slices.Sort(report.RepeatedIndices)

	return report, true
}

// gaps walks the missing runs between neighbouring sorted distinct indices.
// The work is bounded by len(sorted) and limit, not by the index range.
func gaps(sorted []int, limit int) (listed []int, count int) {
	listed = []int{}
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		count += next - prev - 1
		for missing := prev + 1; missing < next && len(listed) < limit; missing++ {
			listed = append(listed, missing)
		}
	}
	return listed, count
}

// AnalyzeText extracts and analyzes text in one step
func AnalyzeText(text string) (*Report, bool) {
	return Analyze(sii.Extract(text))
}

// DuplicateValues returns the duplicated values in sorted order
func (r *Report) DuplicateValues() []string {
	values := make([]string, 0, len(r.Duplicates))
	for value := range r.Duplicates {
		values = append(values, value)
	}
	slices.Sort(values)
	return values
}
