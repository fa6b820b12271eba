package dump

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Open opens a dump file for streaming reads. Files ending in .bz2 or .gz
// are decompressed on the fly; anything else is read as plain text. A
// missing or unreadable path fails here, before any record is processed.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}

	switch {
	case strings.HasSuffix(path, ".bz2"):
		return &decodeCloser{r: bzip2.NewReader(f), f: f}, nil
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip dump: %w", err)
		}
		return &decodeCloser{r: zr, f: f, c: zr}, nil
	default:
		return f, nil
	}
}

// decodeCloser pairs a decompressing reader with the file it draws from.
type decodeCloser struct {
	r io.Reader
	f *os.File
	c io.Closer // decoder's own closer, when it has one
}

func (d *decodeCloser) Read(p []byte) (int, error) { return d.r.Read(p) }

func (d *decodeCloser) Close() error {
	if d.c != nil {
		if err := d.c.Close(); err != nil {
			d.f.Close()
			return err
		}
	}
	return d.f.Close()
}
