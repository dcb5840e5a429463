package evidence

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
)

// ErrEntryTooLarge rejects an archive holding an entry over maxEntrySize
// once decompressed.
var ErrEntryTooLarge = errors.New("archive entry too large")

// maxEntrySize caps a single decompressed archive entry.
var maxEntrySize int64 = 64 << 20

// ExpandArchive returns the supported documents inside a zip archive, in
// archive order. Directory entries and unsupported files are skipped; names
// are reduced to their base name. An entry larger than the size cap fails the
// whole archive with ErrEntryTooLarge.
func ExpandArchive(data []byte) ([]Upload, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	var out []Upload
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !IsSupported(f.Name) {
			continue
		}
		if f.UncompressedSize64 > uint64(maxEntrySize) {
			return nil, fmt.Errorf("%w: %s", ErrEntryTooLarge, f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		// the header size is not trusted; read one byte past the cap
		b, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		if int64(len(b)) > maxEntrySize {
			return nil, fmt.Errorf("%w: %s", ErrEntryTooLarge, f.Name)
		}
		out = append(out, Upload{Name: path.Base(f.Name), Data: b})
	}
	return out, nil
}
