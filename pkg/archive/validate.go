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

package archive

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// 📦 Expectations describe the layout a packaged mod must follow
type Expectations struct {
	Manifest      string   // e.g. manifest.sii
	Description   string   // e.g. desc.txt
	Target        string   // e.g. driver_names.sii
	TargetSubpath string   // directory the target must live under, e.g. universal/locale
	StrayPatterns []string // doublestar patterns for files that should not ship
}

// DefaultExpectations returns the layout of the driver id mod
func DefaultExpectations() Expectations {
	return Expectations{
		Manifest:      "manifest.sii",
		Description:   "desc.txt",
		Target:        "driver_names.sii",
		TargetSubpath: "universal/locale",
		StrayPatterns: []string{"**/*.md", "**/*EXAMPLE*", "**/*EXAMPLE*/**"},
	}
}

// 📍 Location is one occurrence of the target document
type Location struct {
	Path     string `json:"path"`
	Expected bool   `json:"expected"` // under TargetSubpath
}

// ✅ Result is the outcome of validating an archive listing
type Result struct {
	Entries        int        `json:"entries"`
	HasManifest    bool       `json:"has_manifest"`
	HasDescription bool       `json:"has_description"`
	HasTarget      bool       `json:"has_target"`
	Targets        []Location `json:"targets"`
	StrayFiles     []string   `json:"stray_files"`
}

// OK reports whether every required entry is present
func (r Result) OK() bool {
	return r.HasManifest && r.HasDescription && r.HasTarget
}

// PreferredTarget returns the first target under the expected subpath
func (r Result) PreferredTarget() (string, bool) {
	for _, loc := range r.Targets {
		if loc.Expected {
			return loc.Path, true
		}
	}
	return "", false
}

// Validate checks a list of archive entry names against expect. It only
// looks at names, never at content.
func Validate(entries []string, expect Expectations) Result {
	result := Result{
		Entries:    len(entries),
		Targets:    []Location{},
		StrayFiles: []string{},
	}

	underSubpath := path.Join("**", strings.Trim(expect.TargetSubpath, "/"), "**")

	for _, entry := range entries {
		name := strings.TrimSuffix(entry, "/")
		isDir := name != entry
		base := path.Base(name)

		if !isDir {
			switch base {
			case expect.Manifest:
				result.HasManifest = true
			case expect.Description:
				result.HasDescription = true
			case expect.Target:
				result.HasTarget = true
				result.Targets = append(result.Targets, Location{
					Path:     entry,
					Expected: expect.TargetSubpath == "" || matches(underSubpath, name),
				})
			}
		}

		for _, pattern := range expect.StrayPatterns {
			if matches(pattern, name) {
				result.StrayFiles = append(result.StrayFiles, entry)
				break
			}
		}
	}

	return result
}

func matches(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
