package config

import (
	"context"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Environment overrides
const (
	EnvFormat      = "DRIVERNAME_FORMAT"
	EnvConcurrency = "DRIVERNAME_CONCURRENCY"
)

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given). Missing files are ignored and variables already set in the
// process environment win.
func LoadDotEnv(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				zerolog.Ctx(ctx).Debug().Str("path", p).Msg("no .env file")
				continue
			}
			return errors.Errorf("loading %s: %w", p, err)
		}
		zerolog.Ctx(ctx).Debug().Str("path", p).Msg("loaded .env file")
	}
	return nil
}

// ApplyEnv overrides config values from the environment. lookup is
// usually os.LookupEnv.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFormat); ok && v != "" {
		cfg.Format = v
	}
	if v, ok := lookup(EnvConcurrency); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Errorf("%s: %w", EnvConcurrency, err)
		}
		cfg.Concurrency = n
	}
	return nil
}
