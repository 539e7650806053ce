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
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/archive"
	"github.com/walteh/drivername/pkg/status"
	"github.com/walteh/drivername/pkg/text"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Defaults
const (
	DefaultConcurrency    = 4
	DefaultArchive        = "dist/driver_id_names.scs"
	DefaultTargetName     = "driver_names.sii"
	DefaultTargetSubpath  = "universal/locale"
	DefaultManifestName   = "manifest.sii"
	DefaultDescription    = "desc.txt"
	DefaultConfigBaseName = ".drivername"
)

// 📚 Config represents the complete configuration
type Config struct {
	Format          string `json:"format,omitempty" yaml:"format,omitempty" hcl:"format,optional"`
	TargetName      string `json:"target_name,omitempty" yaml:"target_name,omitempty" hcl:"target_name,optional"`
	TargetSubpath   string `json:"target_subpath,omitempty" yaml:"target_subpath,omitempty" hcl:"target_subpath,optional"`
	ManifestName    string `json:"manifest_name,omitempty" yaml:"manifest_name,omitempty" hcl:"manifest_name,optional"`
	DescriptionName string `json:"description_name,omitempty" yaml:"description_name,omitempty" hcl:"description_name,optional"`
	DefaultArchive  string `json:"default_archive,omitempty" yaml:"default_archive,omitempty" hcl:"default_archive,optional"`
	Concurrency     int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`

	location string
	template *text.Template
}

// Default returns a validated config with every default filled in
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// 🎯 Load loads the configuration from a file, applies environment
// overrides and validates the result
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: config file %s", status.ErrInputNotFound, path)
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, errors.Errorf("applying environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Discover loads the first .drivername.{yaml,yml,hcl,json} found in dir.
// Without one, the defaults plus environment overrides are returned.
func Discover(ctx context.Context, dir string) (*Config, error) {
	for _, ext := range []string{".yaml", ".yml", ".hcl", ".json"} {
		candidate := filepath.Join(dir, DefaultConfigBaseName+ext)
		if _, err := os.Stat(candidate); err == nil {
			return Load(ctx, candidate)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")

	cfg := &Config{}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, errors.Errorf("applying environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// 🔍 Validate fills in defaults and checks the format template
func (cfg *Config) Validate() error {
	if cfg.Format == "" {
		cfg.Format = text.DefaultFormat
	}
	if cfg.TargetName == "" {
		cfg.TargetName = DefaultTargetName
	}
	if cfg.TargetSubpath == "" {
		cfg.TargetSubpath = DefaultTargetSubpath
	}
	if cfg.ManifestName == "" {
		cfg.ManifestName = DefaultManifestName
	}
	if cfg.DescriptionName == "" {
		cfg.DescriptionName = DefaultDescription
	}
	if cfg.DefaultArchive == "" {
		cfg.DefaultArchive = DefaultArchive
	}

	switch {
	case cfg.Concurrency < 0:
		return errors.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	case cfg.Concurrency == 0:
		cfg.Concurrency = DefaultConcurrency
	}

	if filepath.Base(cfg.TargetName) != cfg.TargetName {
		return errors.Errorf("target_name must be a file name, got %q", cfg.TargetName)
	}

	tmpl, err := text.ParseTemplate(cfg.Format)
	if err != nil {
		return errors.Errorf("parsing format template: %w", err)
	}
	cfg.template = tmpl

	return nil
}

// Template returns the parsed format template. It is nil until Validate
// succeeds.
func (cfg *Config) Template() *text.Template {
	return cfg.template
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// Expectations returns the archive layout described by the config
func (cfg *Config) Expectations() archive.Expectations {
	expect := archive.DefaultExpectations()
	expect.Manifest = cfg.ManifestName
	expect.Description = cfg.DescriptionName
	expect.Target = cfg.TargetName
	expect.TargetSubpath = cfg.TargetSubpath
	return expect
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("format=%q target=%s/**/%s concurrency=%d", cfg.Format, cfg.TargetSubpath, cfg.TargetName, cfg.Concurrency)
}
