package extsort

import (
	"bufio"
	"container/heap"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/internalerr"
)

// DefaultChunkBytes is the per-chunk budget when none is configured.
const DefaultChunkBytes = 64 << 20

// ChunkSorter is the default disk-backed merge sorter. It reads the input
// in chunks of at most ChunkBytes, sorts each chunk in memory, writes the
// sorted runs to a scratch directory, and k-way merges the runs into dst.
// Chunks are sorted concurrently; the merge depends only on line bytes, so
// output is identical for any degree of parallelism.
type ChunkSorter struct {
	// ChunkBytes is the per-chunk byte budget. Zero means DefaultChunkBytes.
	ChunkBytes int
	// ScratchDir is the parent for the per-run scratch directory. Empty
	// means the OS temp dir.
	ScratchDir string
	// Parallelism caps concurrent chunk sorts. Zero means GOMAXPROCS.
	Parallelism int
}

// Sort implements Sorter.
func (c *ChunkSorter) Sort(ctx context.Context, src, dst string) error {
	chunkBytes := c.ChunkBytes
	if chunkBytes <= 0 {
		chunkBytes = DefaultChunkBytes
	}
	par := c.Parallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(0)
	}
	parent := c.ScratchDir
	if parent == "" {
		parent = os.TempDir()
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open spool: %w", err)
	}
	defer in.Close()

	scratch := filepath.Join(parent, "vocab-sort-"+ulid.Make().String())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return fmt.Errorf("%w: create scratch dir: %v", internalerr.ErrNoSorter, err)
	}
	defer os.RemoveAll(scratch)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(par)

	var (
		runs  []string
		lines []string
		size  int
		idx   int
	)
	flush := func() {
		if len(lines) == 0 {
			return
		}
		chunk := lines
		lines = nil
		size = 0
		path := filepath.Join(scratch, fmt.Sprintf("run-%06d", idx))
		idx++
		runs = append(runs, path)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sort.Strings(chunk)
			return writeRun(path, chunk)
		})
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	for sc.Scan() {
		line := sc.Text()
		lines = append(lines, line)
		size += len(line) + 1
		if size >= chunkBytes {
			flush()
		}
	}
	if err := sc.Err(); err != nil {
		g.Wait()
		return fmt.Errorf("read spool: %w", err)
	}
	flush()
	if err := g.Wait(); err != nil {
		return fmt.Errorf("sort chunk: %w", err)
	}

	return mergeRuns(runs, dst)
}

// writeRun persists one sorted chunk.
func writeRun(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create run file: %v", internalerr.ErrNoSorter, err)
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// mergeItem is one head-of-run line in the merge heap.
type mergeItem struct {
	line string
	run  int
}

type mergeHeap []mergeItem

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	if h[i].line != h[j].line {
		return h[i].line < h[j].line
	}
	return h[i].run < h[j].run
}
func (h mergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)   { *h = append(*h, x.(mergeItem)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// mergeRuns k-way merges sorted run files into dst.
func mergeRuns(runs []string, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create sorted file: %w", err)
	}
	w := bufio.NewWriter(out)

	files := make([]*os.File, 0, len(runs))
	scanners := make([]*bufio.Scanner, 0, len(runs))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	h := make(mergeHeap, 0, len(runs))
	for i, path := range runs {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			out.Close()
			return fmt.Errorf("open run file: %w", err)
		}
		files = append(files, f)
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 64*1024), maxLine)
		scanners = append(scanners, sc)
		if sc.Scan() {
			h = append(h, mergeItem{line: sc.Text(), run: i})
		} else if err := sc.Err(); err != nil {
			closeAll()
			out.Close()
			return fmt.Errorf("read run file: %w", err)
		}
	}
	heap.Init(&h)

	for h.Len() > 0 {
		it := heap.Pop(&h).(mergeItem)
		if _, err := w.WriteString(it.line); err != nil {
			closeAll()
			out.Close()
			return fmt.Errorf("write sorted file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			closeAll()
			out.Close()
			return fmt.Errorf("write sorted file: %w", err)
		}
		sc := scanners[it.run]
		if sc.Scan() {
			heap.Push(&h, mergeItem{line: sc.Text(), run: it.run})
		} else if err := sc.Err(); err != nil {
			closeAll()
			out.Close()
			return fmt.Errorf("read run file: %w", err)
		}
	}
	closeAll()

	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("flush sorted file: %w", err)
	}
	return out.Close()
}
