package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 🧪 TestDefaultFileFormatter tests the default file formatter implementation
func TestDefaultFileFormatter(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		status      FileStatus
		want        string
		description string
	}{
		{
			name:        "new_file",
			path:        "driver_names.sii",
			status:      StatusNew,
			want:        "✨ Created driver_names.sii",
			description: "should show creation symbol for new files",
		},
		{
			name:        "modified_file",
			path:        "driver_names.sii",
			status:      StatusModified,
			want:        "📝 Modified driver_names.sii",
			description: "should show modification symbol for changed files",
		},
		{
			name:        "unchanged_file",
			path:        "driver_names.sii",
			status:      StatusUnchanged,
			want:        "👍 Unchanged driver_names.sii",
			description: "should show unchanged symbol for identical files",
		},
		{
			name:        "error_status",
			path:        "driver_names.sii",
			status:      StatusError,
			want:        "❌ Failed driver_names.sii",
			description: "should show error symbol for failed writes",
		},
		{
			name:        "empty_path",
			path:        "",
			status:      StatusNew,
			want:        "✨ Created ",
			description: "should handle empty path gracefully",
		},
	}

	formatter := NewDefaultFileFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.FormatFileOperation(tt.path, tt.status)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

// 🧪 TestProgressFormatting tests progress message formatting
func TestProgressFormatting(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected string
	}{
		{name: "zero_progress", current: 0, total: 10, expected: "⏳ Progress: 0/10 (0%)"},
		{name: "half_progress", current: 5, total: 10, expected: "⏳ Progress: 5/10 (50%)"},
		{name: "complete", current: 10, total: 10, expected: "✅ Progress: 10/10 (100%)"},
		{name: "zero_total", current: 0, total: 0, expected: "✅ Progress: 0/0 (0%)"},
		{name: "current_exceeds_total", current: 15, total: 10, expected: "✅ Progress: 15/10 (100%)"},
		{name: "negative_values", current: -1, total: -1, expected: "✅ Progress: 0/0 (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewDefaultFileFormatter()
			assert.Equal(t, tt.expected, formatter.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	formatter := NewDefaultFileFormatter()
	assert.Equal(t, "❌ Error: assert.AnError general error for testing", formatter.FormatError(assert.AnError))
	assert.Equal(t, "", formatter.FormatError(nil))
}
