// Package finder locates driver name tables inside extracted game archives.
package finder

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/status"
)

// DefaultName is the file the game reads driver names from
const DefaultName = "driver_names.sii"

// 📍 Match is a file found under the search root
type Match struct {
	Path    string // absolute path
	RelPath string // path relative to the search root, slash separated
}

// Find walks root and returns every regular file whose base name equals
// name, sorted by relative path.
func Find(ctx context.Context, root, name string) ([]Match, error) {
	if name == "" {
		name = DefaultName
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: directory %s", status.ErrInputNotFound, absRoot)
		}
		return nil, errors.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root is not a directory: %s", absRoot)
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("root", absRoot).Str("name", name).Msg("searching")

	var matches []Match
	pattern := "**/" + escapeMeta(name)
	err = doublestar.GlobWalk(os.DirFS(absRoot), pattern, func(p string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matches = append(matches, Match{
			Path:    filepath.Join(absRoot, filepath.FromSlash(p)),
			RelPath: p,
		})
		logger.Debug().Str("path", p).Msg("found")
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", absRoot, err)
	}

	slices.SortFunc(matches, func(a, b Match) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})
	return matches, nil
}

// Locale returns the locale directory a match sits in, such as "en_us" for
// locale/en_us/driver_names.sii, or "" when it is not under a locale folder.
func (m Match) Locale() string {
	dir := path.Dir(m.RelPath)
	if path.Base(path.Dir(dir)) != "locale" {
		return ""
	}
	return path.Base(dir)
}

func escapeMeta(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
