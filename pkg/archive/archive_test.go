package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/sii"
	"github.com/walteh/drivername/pkg/status"
)

const sampleTable = `SiiNunit
{
driver_names : driver.names {
 name[0]: "0 - Alex"
 name[1]: "Brian"
 name[2]: "2 - Carla"
}
}
`

func writeZip(t *testing.T, files map[string]string, dirs ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mod.scs")
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, d := range dirs {
		_, err := w.Create(d)
		require.NoError(t, err)
	}
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return p
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		entries       []string
		wantOK        bool
		wantTargets   []Location
		wantStray     []string
		wantPreferred string
	}{
		{
			name: "complete_mod",
			entries: []string{
				"manifest.sii",
				"desc.txt",
				"universal/",
				"universal/locale/",
				"universal/locale/en_us/",
				"universal/locale/en_us/driver_names.sii",
			},
			wantOK:        true,
			wantTargets:   []Location{{Path: "universal/locale/en_us/driver_names.sii", Expected: true}},
			wantStray:     []string{},
			wantPreferred: "universal/locale/en_us/driver_names.sii",
		},
		{
			name:          "missing_manifest",
			entries:       []string{"desc.txt", "universal/locale/driver_names.sii"},
			wantOK:        false,
			wantTargets:   []Location{{Path: "universal/locale/driver_names.sii", Expected: true}},
			wantStray:     []string{},
			wantPreferred: "universal/locale/driver_names.sii",
		},
		{
			name:        "target_in_wrong_place",
			entries:     []string{"manifest.sii", "desc.txt", "def/driver_names.sii"},
			wantOK:      true,
			wantTargets: []Location{{Path: "def/driver_names.sii", Expected: false}},
			wantStray:   []string{},
		},
		{
			name: "stray_documents",
			entries: []string{
				"manifest.sii",
				"desc.txt",
				"README.md",
				"docs/notes.md",
				"EXAMPLE_names.sii",
				"EXAMPLES/",
				"EXAMPLES/one.sii",
				"universal/locale/en_us/driver_names.sii",
			},
			wantOK:      true,
			wantTargets: []Location{{Path: "universal/locale/en_us/driver_names.sii", Expected: true}},
			wantStray: []string{
				"README.md",
				"docs/notes.md",
				"EXAMPLE_names.sii",
				"EXAMPLES/",
				"EXAMPLES/one.sii",
			},
			wantPreferred: "universal/locale/en_us/driver_names.sii",
		},
		{
			name:        "substring_is_not_a_target",
			entries:     []string{"manifest.sii", "desc.txt", "old_driver_names.sii.bak"},
			wantOK:      false,
			wantTargets: []Location{},
			wantStray:   []string{},
		},
		{
			name:        "empty_archive",
			entries:     nil,
			wantOK:      false,
			wantTargets: []Location{},
			wantStray:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.entries, DefaultExpectations())

			assert.Equal(t, tt.wantOK, result.OK(), "OK should match")
			assert.Equal(t, len(tt.entries), result.Entries)
			assert.Equal(t, tt.wantTargets, result.Targets, "targets should match")
			assert.Equal(t, tt.wantStray, result.StrayFiles, "stray files should match")

			preferred, ok := result.PreferredTarget()
			assert.Equal(t, tt.wantPreferred != "", ok)
			assert.Equal(t, tt.wantPreferred, preferred)
		})
	}
}

func TestListAndReadEntries(t *testing.T) {
	ctx := context.Background()
	p := writeZip(t, map[string]string{
		"manifest.sii":                            "SiiNunit {}",
		"universal/locale/en_us/driver_names.sii": sampleTable,
	}, "universal/")

	entries, err := ListEntries(ctx, p)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Contains(t, entries, "universal/")
	assert.Contains(t, entries, "manifest.sii")

	data, err := ReadEntry(ctx, p, "universal/locale/en_us/driver_names.sii")
	require.NoError(t, err)
	assert.Equal(t, sampleTable, string(data))

	_, err = ReadEntry(ctx, p, "nope.sii")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInputNotFound), "missing entry should be input not found")
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()

	_, err := ListEntries(ctx, filepath.Join(t.TempDir(), "missing.scs"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInputNotFound))

	notZip := filepath.Join(t.TempDir(), "plain.scs")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0o644))
	_, err = ListEntries(ctx, notZip)
	require.Error(t, err)
	assert.False(t, errors.Is(err, status.ErrInputNotFound), "corrupt archive is not a missing input")
}

func TestInspectContent(t *testing.T) {
	ins, err := InspectContent([]byte(sampleTable))
	require.NoError(t, err)

	assert.Equal(t, "utf-8", ins.Encoding)
	assert.Equal(t, 3, ins.Records)
	assert.Equal(t, 2, ins.Tagged)
	assert.False(t, ins.FullyTagged())
	assert.True(t, ins.HasUnitHeader)
	assert.True(t, ins.HasNameTable)
	require.Len(t, ins.Sample, 3)
	assert.Equal(t, "Brian", ins.Sample[1].Value)
}

func TestInspectContentUTF16(t *testing.T) {
	raw, err := sii.Encode(`name[0]: "0 - Alex"`, sii.UTF16LE)
	require.NoError(t, err)

	ins, err := InspectContent(raw)
	require.NoError(t, err)
	assert.Equal(t, "utf-16le", ins.Encoding)
	assert.Equal(t, 1, ins.Records)
	assert.True(t, ins.FullyTagged())
	assert.False(t, ins.HasUnitHeader)
}

func TestInspectContentSampleLimit(t *testing.T) {
	content := ""
	for i := range 8 {
		content += `name[` + string(rune('0'+i)) + `]: "x"` + "\n"
	}

	ins, err := InspectContent([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, 8, ins.Records)
	assert.Len(t, ins.Sample, SampleSize)
	assert.Equal(t, 0, ins.Tagged)
}
