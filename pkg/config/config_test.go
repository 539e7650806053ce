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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/status"
	"github.com/walteh/drivername/pkg/text"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvConcurrency, "")

	tests := []struct {
		name        string
		filename    string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: ".drivername.yaml",
			config: `
format: "[{index}] {name}"
target_subpath: locale
concurrency: 2
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "[{index}] {name}", cfg.Format, "format should match")
				assert.Equal(t, "locale", cfg.TargetSubpath, "subpath should match")
				assert.Equal(t, 2, cfg.Concurrency, "concurrency should match")
				assert.Equal(t, DefaultTargetName, cfg.TargetName, "target name should default")
				require.NotNil(t, cfg.Template())
				assert.Equal(t, "[7] Alex", cfg.Template().Render(7, "Alex"))
			},
		},
		{
			name:     "empty_yaml_uses_defaults",
			filename: ".drivername.yml",
			config:   "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, text.DefaultFormat, cfg.Format)
				assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
				assert.Equal(t, DefaultArchive, cfg.DefaultArchive)
			},
		},
		{
			name:     "valid_hcl",
			filename: ".drivername.hcl",
			config: `
format         = "#{index} {name}"
manifest_name  = "mod_manifest.sii"
concurrency    = 8
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "#{index} {name}", cfg.Format)
				assert.Equal(t, "mod_manifest.sii", cfg.ManifestName)
				assert.Equal(t, 8, cfg.Concurrency)
				assert.Equal(t, "mod_manifest.sii", cfg.Expectations().Manifest)
			},
		},
		{
			name:     "hcl_reads_environment",
			filename: ".drivername.hcl",
			config:   `default_archive = "${env.DRIVERNAME_TEST_DIST}/mod.scs"`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/dist/mod.scs", cfg.DefaultArchive)
			},
		},
		{
			name:     "valid_json",
			filename: ".drivername.json",
			config:   `{"format": "{name} ({index})", "description_name": "about.txt"}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "{name} ({index})", cfg.Format)
				assert.Equal(t, "about.txt", cfg.DescriptionName)
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    ".drivername.yaml",
			config:      "destination: /tmp\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    ".drivername.json",
			config:      `{"repo": "x"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_hcl_attribute",
			filename:    ".drivername.hcl",
			config:      `repo = "x"`,
			errContains: "decoding HCL",
		},
		{
			name:        "invalid_template",
			filename:    ".drivername.yaml",
			config:      `format: "{index} - {nam}"`,
			errContains: "parsing format template",
		},
		{
			name:        "template_without_placeholder",
			filename:    ".drivername.yaml",
			config:      `format: "Driver"`,
			errContains: "validating config",
		},
		{
			name:        "negative_concurrency",
			filename:    ".drivername.yaml",
			config:      "concurrency: -1\n",
			errContains: "concurrency must not be negative",
		},
		{
			name:        "target_name_with_directory",
			filename:    ".drivername.yaml",
			config:      "target_name: locale/driver_names.sii\n",
			errContains: "target_name must be a file name",
		},
		{
			name:        "unsupported_extension",
			filename:    "drivername.toml",
			config:      "format = 'x'",
			errContains: "no parser found",
		},
	}

	t.Setenv("DRIVERNAME_TEST_DIST", "/tmp/dist")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.Nop().WithContext(context.Background())

			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644))

			cfg, err := Load(ctx, path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInputNotFound))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvFormat, "<{index}> {name}")
	t.Setenv(EnvConcurrency, "3")

	path := filepath.Join(t.TempDir(), ".drivername.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: \"{index}: {name}\"\nconcurrency: 9\n"), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<{index}> {name}", cfg.Format, "environment should win over the file")
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestDiscover(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvConcurrency, "")
	ctx := context.Background()

	t.Run("no_config_file", func(t *testing.T) {
		cfg, err := Discover(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, text.DefaultFormat, cfg.Format)
		assert.Empty(t, cfg.Location())
	})

	t.Run("yaml_preferred_over_json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".drivername.yaml"), []byte("concurrency: 5\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".drivername.json"), []byte(`{"concurrency": 6}`), 0o644))

		cfg, err := Discover(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Concurrency)
		assert.Equal(t, filepath.Join(dir, ".drivername.yaml"), cfg.Location())
	})
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "no_overrides",
			env:  map[string]string{},
			want: Config{Format: "{name}", Concurrency: 1},
		},
		{
			name: "both_overrides",
			env:  map[string]string{EnvFormat: "{index}|{name}", EnvConcurrency: " 12 "},
			want: Config{Format: "{index}|{name}", Concurrency: 12},
		},
		{
			name: "empty_values_are_ignored",
			env:  map[string]string{EnvFormat: "", EnvConcurrency: ""},
			want: Config{Format: "{name}", Concurrency: 1},
		},
		{
			name:    "bad_concurrency",
			env:     map[string]string{EnvConcurrency: "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Format: "{name}", Concurrency: 1}
			err := cfg.ApplyEnv(func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), EnvConcurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	ctx := context.Background()
	const key = "DRIVERNAME_DOTENV_TEST"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o644))

	require.NoError(t, LoadDotEnv(ctx, path))
	assert.Equal(t, "from-file", os.Getenv(key))

	require.NoError(t, LoadDotEnv(ctx, filepath.Join(t.TempDir(), "missing.env")), "missing .env should be ignored")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, text.DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultTargetSubpath, cfg.TargetSubpath)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.NotNil(t, cfg.Template())

	expect := cfg.Expectations()
	assert.Equal(t, "manifest.sii", expect.Manifest)
	assert.Equal(t, "driver_names.sii", expect.Target)
	assert.NotEmpty(t, expect.StrayPatterns)
}
