package extsort

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/internalerr"
)

// ExecSorter shells out to the system sort utility with byte-order
// collation (LC_ALL=C matches Go's string comparison). It is an alternative
// to ChunkSorter for hosts where coreutils sort is preferable; both
// implementations produce identical bytes for identical input.
type ExecSorter struct {
	// Command is the sort executable. Empty means "sort".
	Command string
}

// Sort implements Sorter.
func (e *ExecSorter) Sort(ctx context.Context, src, dst string) error {
	name := e.Command
	if name == "" {
		name = "sort"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrNoSorter, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create sorted file: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, src)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.Stdout = out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("system sort: %v: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Close()
}
