package extsort

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDedupAdjacent(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sorted.txt", "anh\nanh\nanh\nem\n")
	dst := filepath.Join(dir, "out.txt")

	n, err := Dedup(src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "anh\nem\n", readFile(t, dst))
}

func TestDedupSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sorted.txt", "\n\nanh\n\nem\nem\n")
	dst := filepath.Join(dir, "out.txt")

	n, err := Dedup(src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "anh\nem\n", readFile(t, dst))
}

func TestRunSortsThenDedups(t *testing.T) {
	// Spool order is arbitrary; the pipeline must produce a sorted unique
	// list regardless.
	dir := t.TempDir()
	src := writeFile(t, dir, "spool.txt", "anh\nanh\nem\nanh\n")
	dst := filepath.Join(dir, "words.txt")

	n, err := Run(context.Background(), &ChunkSorter{ScratchDir: dir}, src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "anh\nem\n", readFile(t, dst))

	// The intermediate sorted file must not linger.
	_, err = os.Stat(dst + ".sorted")
	assert.True(t, os.IsNotExist(err))
}

func TestChunkSorterMultipleChunks(t *testing.T) {
	dir := t.TempDir()

	rng := rand.New(rand.NewSource(42))
	words := make([]string, 500)
	for i := range words {
		words[i] = fmt.Sprintf("từ%04d", rng.Intn(200))
	}
	src := writeFile(t, dir, "spool.txt", strings.Join(words, "\n")+"\n")
	dst := filepath.Join(dir, "sorted.txt")

	// A tiny chunk budget forces many runs through the merge.
	s := &ChunkSorter{ChunkBytes: 64, ScratchDir: dir, Parallelism: 4}
	require.NoError(t, s.Sort(context.Background(), src, dst))

	want := append([]string(nil), words...)
	sort.Strings(want)
	assert.Equal(t, strings.Join(want, "\n")+"\n", readFile(t, dst))
}

func TestChunkSorterDeterministicAcrossParallelism(t *testing.T) {
	dir := t.TempDir()

	rng := rand.New(rand.NewSource(7))
	var b strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&b, "w%03d\n", rng.Intn(100))
	}
	src := writeFile(t, dir, "spool.txt", b.String())

	outs := make([]string, 2)
	for i, par := range []int{1, 8} {
		dst := filepath.Join(dir, fmt.Sprintf("sorted-%d.txt", par))
		s := &ChunkSorter{ChunkBytes: 128, ScratchDir: dir, Parallelism: par}
		require.NoError(t, s.Sort(context.Background(), src, dst))
		outs[i] = readFile(t, dst)
	}
	assert.Equal(t, outs[0], outs[1])
}

func TestChunkSorterEmptyInput(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "spool.txt", "")
	dst := filepath.Join(dir, "sorted.txt")

	require.NoError(t, (&ChunkSorter{ScratchDir: dir}).Sort(context.Background(), src, dst))
	assert.Equal(t, "", readFile(t, dst))
}

func TestChunkSorterMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := (&ChunkSorter{ScratchDir: dir}).Sort(context.Background(),
		filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt"))
	assert.Error(t, err)
}

func TestExecSorterMatchesChunkSorter(t *testing.T) {
	if _, err := exec.LookPath("sort"); err != nil {
		t.Skip("sort utility not available")
	}

	dir := t.TempDir()
	src := writeFile(t, dir, "spool.txt", "em\nanh\nỷ\nanh\nchị\n")

	chunkDst := filepath.Join(dir, "chunk.txt")
	execDst := filepath.Join(dir, "exec.txt")

	require.NoError(t, (&ChunkSorter{ScratchDir: dir}).Sort(context.Background(), src, chunkDst))
	require.NoError(t, (&ExecSorter{}).Sort(context.Background(), src, execDst))

	// Both mechanisms must agree byte for byte.
	assert.Equal(t, readFile(t, chunkDst), readFile(t, execDst))
}

func TestExecSorterMissingBinary(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "spool.txt", "anh\n")

	err := (&ExecSorter{Command: "definitely-not-a-sort-binary"}).Sort(
		context.Background(), src, filepath.Join(dir, "out.txt"))
	assert.Error(t, err)
}
