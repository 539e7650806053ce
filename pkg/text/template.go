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

package text

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// DefaultFormat prefixes each name with its driver id
const DefaultFormat = "{index} - {name}"

const (
	placeholderIndex = "index"
	placeholderName  = "name"
)

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentIndex
	segmentName
)

type segment struct {
	kind    segmentKind
	literal string
}

// 🧩 Template is a compiled format string such as "{index} - {name}".
// "{{" and "}}" produce literal braces.
type Template struct {
	raw      string
	segments []segment
}

// ParseTemplate compiles a format string
func ParseTemplate(format string) (*Template, error) {
	var (
		segments []segment
		literal  strings.Builder
		hasIndex bool
		hasName  bool
	)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{kind: segmentLiteral, literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch c {
		case '"':
			return nil, errors.Errorf("format %q: double quotes would break the record quoting", format)
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				literal.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				return nil, errors.Errorf("format %q: unclosed '{' at offset %d", format, i)
			}
			name := format[i+1 : i+1+end]
			flush()
			switch name {
			case placeholderIndex:
				segments = append(segments, segment{kind: segmentIndex})
				hasIndex = true
			case placeholderName:
				segments = append(segments, segment{kind: segmentName})
				hasName = true
			default:
				return nil, errors.Errorf("format %q: unknown placeholder {%s}", format, name)
			}
			i += end + 1
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				literal.WriteByte('}')
				i++
				continue
			}
			return nil, errors.Errorf("format %q: unmatched '}' at offset %d", format, i)
		default:
			literal.WriteByte(c)
		}
	}
	flush()

	if !hasIndex && !hasName {
		return nil, errors.Errorf("format %q: a {%s} or {%s} placeholder is required", format, placeholderIndex, placeholderName)
	}

	return &Template{raw: format, segments: segments}, nil
}

// MustParseTemplate is like ParseTemplate but panics on error
func MustParseTemplate(format string) *Template {
	t, err := ParseTemplate(format)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the original format string
func (t *Template) String() string {
	return t.raw
}

// Render formats a single value
func (t *Template) Render(index int, name string) string {
	var b strings.Builder
	for _, seg := range t.segments {
		switch seg.kind {
		case segmentIndex:
			b.WriteString(strconv.Itoa(index))
		case segmentName:
			b.WriteString(name)
		default:
			b.WriteString(seg.literal)
		}
	}
	return b.String()
}

// Rule returns the template as a Rule
func (t *Template) Rule() Rule {
	return t.Render
}

// Produced reports whether value is what this template renders for index,
// so a custom format is recognized on a second run just like the built-in
// shapes. Every {index} must spell index itself; {name} matches anything, so
// a template without {index} treats any value carrying its literals as done.
func (t *Template) Produced(index int, value string) bool {
	id := strconv.Itoa(index)

	// fixed text between the {name} wildcards
	pieces := []string{""}
	for _, seg := range t.segments {
		switch seg.kind {
		case segmentName:
			pieces = append(pieces, "")
		case segmentIndex:
			pieces[len(pieces)-1] += id
		default:
			pieces[len(pieces)-1] += seg.literal
		}
	}

	if len(pieces) == 1 {
		return value == pieces[0]
	}

	rest, ok := strings.CutPrefix(value, pieces[0])
	if !ok {
		return false
	}
	for _, piece := range pieces[1 : len(pieces)-1] {
		i := strings.Index(rest, piece)
		if i < 0 {
			return false
		}
		rest = rest[i+len(piece):]
	}
	return strings.HasSuffix(rest, pieces[len(pieces)-1])
}
