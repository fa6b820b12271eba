// Package spool persists extracted token sets to an append-only
// intermediate file, one token per line. The spool may hold duplicates
// across records; global deduplication happens later, over the closed file.
package spool

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/internalerr"
)

// Spooler is the single writer of the spool file. Appends are flushed per
// record, so an interrupted run always leaves a parseable file behind.
type Spooler struct {
	path    string
	f       *os.File
	w       *bufio.Writer
	written atomic.Int64
	closed  bool
}

// Open creates or opens the spool file. With resume the caller keeps any
// existing content and appends to it; otherwise the file is truncated. That
// choice is always the caller's, never the Spooler's.
func Open(path string, resume bool) (*Spooler, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if resume {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open spool: %w", err)
	}
	return &Spooler{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

// Path returns the spool file path.
func (s *Spooler) Path() string { return s.path }

// Append writes one record's tokens, one per line, and flushes so the file
// is valid after every successful append.
func (s *Spooler) Append(tokens []string) error {
	if s.closed {
		return internalerr.ErrSpoolClosed
	}
	for _, tok := range tokens {
		if _, err := s.w.WriteString(tok); err != nil {
			return fmt.Errorf("write spool: %w", err)
		}
		if err := s.w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write spool: %w", err)
		}
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush spool: %w", err)
	}
	s.written.Add(int64(len(tokens)))
	return nil
}

// Written returns the running total of tokens appended. Diagnostics only.
func (s *Spooler) Written() int64 { return s.written.Load() }

// Close flushes and closes the spool file. Closing twice is a no-op.
func (s *Spooler) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return fmt.Errorf("flush spool: %w", err)
	}
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("close spool: %w", err)
	}
	return nil
}
