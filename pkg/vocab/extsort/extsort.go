// Package extsort deduplicates the finalized spool file through a
// disk-backed sort followed by an adjacent-duplicate pass. Peak memory is
// bounded by the chunk size, never by the total token count.
package extsort

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// maxLine bounds one spool line. Tokens are short; this is pure headroom.
const maxLine = 1 << 20

// Sorter produces a byte-lexicographically sorted copy of a line-oriented
// file. Implementations must be genuinely external: sorting may never
// require the whole input resident in memory. An in-memory set is not an
// acceptable substitute, so Run offers no such fallback.
type Sorter interface {
	Sort(ctx context.Context, src, dst string) error
}

// Dedup copies sorted src to dst, dropping blank lines and lines identical
// to their immediate predecessor. It returns the number of lines written.
func Dedup(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open sorted file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create word list: %w", err)
	}

	w := bufio.NewWriter(out)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		prev     string
		havePrev bool
		count    int64
	)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if havePrev && line == prev {
			continue
		}
		if _, err := w.WriteString(line); err != nil {
			out.Close()
			return 0, fmt.Errorf("write word list: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			out.Close()
			return 0, fmt.Errorf("write word list: %w", err)
		}
		prev = line
		havePrev = true
		count++
	}
	if err := sc.Err(); err != nil {
		out.Close()
		return 0, fmt.Errorf("read sorted file: %w", err)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return 0, fmt.Errorf("flush word list: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close word list: %w", err)
	}
	return count, nil
}

// Run sorts the finalized spool with s and strips adjacent duplicates,
// producing the final word list at outPath. It returns the unique line
// count. Any Sorter satisfying the interface yields identical output bytes.
func Run(ctx context.Context, s Sorter, spoolPath, outPath string) (int64, error) {
	tmp := outPath + ".sorted"
	if err := s.Sort(ctx, spoolPath, tmp); err != nil {
		return 0, fmt.Errorf("external sort: %w", err)
	}
	defer os.Remove(tmp)
	return Dedup(tmp, outPath)
}
