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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `SiiNunit
{
driver_names : driver.names {
 name[0]: "Alex"
 name[1]: "1 - Brian"
 name[3]: "Carla"
}
}
`

func TestMain(m *testing.M) {
	color.NoColor = true
	pterm.DisableStyling()
	m.Run()
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("DRIVERNAME_FORMAT", "")
	t.Setenv("DRIVERNAME_CONCURRENCY", "")

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	args = append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...)
	code := run(context.Background(), args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "driver_names.sii")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestTagCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       func(in, out string) []string
		wantCode   int
		wantOutput string
		wantStderr string
	}{
		{
			name: "default_format",
			args: func(in, out string) []string { return []string{"tag", in, out} },
			wantOutput: `SiiNunit
{
driver_names : driver.names {
 name[0]: "0 - Alex"
 name[1]: "1 - Brian"
 name[3]: "3 - Carla"
}
}
`,
			wantStderr: "tagged 2 records (1 already tagged)",
		},
		{
			name: "positional_format",
			args: func(in, out string) []string { return []string{"tag", in, out, "#{index} {name}"} },
			wantOutput: `SiiNunit
{
driver_names : driver.names {
 name[0]: "#0 Alex"
 name[1]: "1 - Brian"
 name[3]: "#3 Carla"
}
}
`,
		},
		{
			name: "format_flag",
			args: func(in, out string) []string { return []string{"tag", "--format", "{name} ({index})", in, out} },
			wantOutput: `SiiNunit
{
driver_names : driver.names {
 name[0]: "Alex (0)"
 name[1]: "1 - Brian"
 name[3]: "Carla (3)"
}
}
`,
		},
		{
			name:       "bad_format",
			args:       func(in, out string) []string { return []string{"tag", in, out, "Driver"} },
			wantCode:   1,
			wantStderr: "a {index} or {name} placeholder is required",
		},
		{
			name:       "missing_output",
			args:       func(in, out string) []string { return []string{"tag", in} },
			wantCode:   1,
			wantStderr: "output is required",
		},
		{
			name:       "missing_input",
			args:       func(in, out string) []string { return []string{"tag", in + ".missing", out} },
			wantCode:   1,
			wantStderr: "input not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeDocument(t, document)
			out := filepath.Join(t.TempDir(), "dist", "driver_names.sii")

			code, _, stderr := runCLI(t, tt.args(in, out)...)
			assert.Equal(t, tt.wantCode, code, "exit code should match, stderr: %s", stderr)
			if tt.wantStderr != "" {
				assert.Contains(t, stderr, tt.wantStderr)
			}
			if tt.wantOutput != "" {
				got, err := os.ReadFile(out)
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutput, string(got))
			}
		})
	}
}

func TestTagCommandDryRun(t *testing.T) {
	in := writeDocument(t, document)

	code, _, stderr := runCLI(t, "tag", "--dry-run", in)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, `name[3]: "Carla" → "3 - Carla"`)
	assert.Contains(t, stderr, "2 of 3 records would be tagged")

	got, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, document, string(got), "input must not change")
}

func TestTagCommandWithConfig(t *testing.T) {
	in := writeDocument(t, document)
	out := filepath.Join(t.TempDir(), "out.sii")
	cfgPath := filepath.Join(t.TempDir(), ".drivername.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: \"[{index}] {name}\"\n"), 0o644))

	code, _, stderr := runCLI(t, "--config", cfgPath, "tag", in, out)
	require.Equal(t, 0, code, stderr)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), `name[0]: "[0] Alex"`)
}

func TestCheckCommand(t *testing.T) {
	t.Run("report", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "check", writeDocument(t, document))
		assert.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "Gaps: 2")
		assert.Contains(t, stdout, "0 - 3")
	})

	t.Run("json", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "check", "--json", writeDocument(t, document))
		require.Equal(t, 0, code, stderr)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.EqualValues(t, 0, got["min_index"])
		assert.EqualValues(t, 3, got["max_index"])
		assert.EqualValues(t, 3, got["total_entries"])
		assert.Equal(t, []any{float64(2)}, got["gaps"])
	})

	t.Run("no_records_exits_non_zero", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "check", writeDocument(t, "SiiNunit { }"))
		assert.Equal(t, 1, code)
		assert.Contains(t, stdout, "No driver names found")
		assert.NotContains(t, stderr, "❌", "the empty result is not reported as an error")
	})
}

func TestFindCommand(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "universal", "locale", "en_us", "driver_names.sii")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte(document), 0o644))

	code, stdout, stderr := runCLI(t, "find", root)
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, target+"\n", stdout)
}

func TestDiagnoseCommandMissingArchive(t *testing.T) {
	code, _, stderr := runCLI(t, "diagnose", filepath.Join(t.TempDir(), "missing.scs"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "input not found")
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "drivername version info")

	code, stdout, _ = runCLI(t, "version", "--json")
	require.Equal(t, 0, code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info.GoVersion)
}
