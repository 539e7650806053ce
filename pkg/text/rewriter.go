package text

import (
	"regexp"
	"strings"

	"github.com/walteh/drivername/pkg/sii"
)

var (
	// "152 - Felix", "152-Felix"
	numberedPattern = regexp.MustCompile(`^\d+\s*-\s*`)
	// "[152] Felix"
	bracketedPattern = regexp.MustCompile(`^\[\d+\]`)
)

// IsTagged reports whether a value already starts with a driver id
func IsTagged(value string) bool {
	return numberedPattern.MatchString(value) || bracketedPattern.MatchString(value)
}

// DefaultRule renders DefaultFormat
func DefaultRule(index int, value string) string {
	return defaultTemplate.Render(index, value)
}

var defaultTemplate = MustParseTemplate(DefaultFormat)

// ✏️ RecordRewriter applies a Rule to every record of a document
type RecordRewriter struct {
	rule   Rule
	tagged func(index int, value string) bool
}

// NewRecordRewriter creates a rewriter for rule. A nil rule means DefaultRule.
func NewRecordRewriter(rule Rule) *RecordRewriter {
	if rule == nil {
		rule = DefaultRule
	}
	return &RecordRewriter{
		rule: rule,
		tagged: func(_ int, value string) bool {
			return IsTagged(value)
		},
	}
}

// NewTemplateRewriter creates a rewriter that also skips values already in
// the template's own shape
func NewTemplateRewriter(t *Template) *RecordRewriter {
	return &RecordRewriter{
		rule: t.Rule(),
		tagged: func(index int, value string) bool {
			return IsTagged(value) || t.Produced(index, value)
		},
	}
}

// RewriteText extracts records from content and rewrites them
func (r *RecordRewriter) RewriteText(content string) *RewriteResult {
	return r.Rewrite(sii.Extract(content))
}

// Rewrite builds a new document from rs. Bytes outside the record values,
// and the values of records that are already tagged, are copied verbatim.
func (r *RecordRewriter) Rewrite(rs sii.RecordSet) *RewriteResult {
	src := rs.Source()
	result := &RewriteResult{
		Found:           rs.Len(),
		OriginalContent: src,
	}

	var out strings.Builder
	out.Grow(len(src) + rs.Len()*8)

	last := 0
	for _, rec := range rs.Records() {
		out.WriteString(src[last:rec.ValueSpan.Start])
		last = rec.ValueSpan.End

		if r.tagged(rec.Index, rec.Value) {
			out.WriteString(rec.Value)
			continue
		}

		updated := r.rule(rec.Index, rec.Value)
		out.WriteString(updated)
		if updated != rec.Value {
			result.Modified++
			result.Changes = append(result.Changes, Change{Index: rec.Index, Old: rec.Value, New: updated})
		}
	}
	out.WriteString(src[last:])

	result.ModifiedContent = out.String()
	return result
}

// Rewrite is a shortcut for NewRecordRewriter(rule).RewriteText(content)
func Rewrite(content string, rule Rule) *RewriteResult {
	return NewRecordRewriter(rule).RewriteText(content)
}
