package archive

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drivername/pkg/status"
)

// maxEntrySize bounds how much of a single entry ReadEntry will load
const maxEntrySize = 64 << 20

func openZip(path string) (*zip.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: archive %s", status.ErrInputNotFound, path)
		}
		return nil, errors.Errorf("opening archive %s: %w", path, err)
	}
	return r, nil
}

// ListEntries returns every entry name in the archive, in archive order.
// Directory entries keep their trailing slash.
func ListEntries(ctx context.Context, path string) ([]string, error) {
	r, err := openZip(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}

	zerolog.Ctx(ctx).Debug().Str("archive", path).Int("entries", len(names)).Msg("listed archive")
	return names, nil
}

// ReadEntry returns the raw bytes of the named entry
func ReadEntry(ctx context.Context, path, name string) ([]byte, error) {
	r, err := openZip(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	idx := slices.IndexFunc(r.File, func(f *zip.File) bool { return f.Name == name })
	if idx < 0 {
		return nil, errors.Errorf("%w: entry %s in %s", status.ErrInputNotFound, name, path)
	}
	f := r.File[idx]

	rc, err := f.Open()
	if err != nil {
		return nil, errors.Errorf("opening entry %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, errors.Errorf("reading entry %s: %w", name, err)
	}
	if len(data) > maxEntrySize {
		return nil, errors.Errorf("entry %s is larger than %d bytes", name, maxEntrySize)
	}

	zerolog.Ctx(ctx).Debug().Str("archive", path).Str("entry", name).Int("bytes", len(data)).Msg("read entry")
	return data, nil
}
