// Package store persists token document frequencies and imported word
// lists for inspection after an extraction run.
package store

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// Store is the interface for persisting and querying word data.
type Store interface {
	Close() error

	// Frequencies
	AddCounts(ctx context.Context, counts map[string]int64) error
	TokenDF(ctx context.Context, token string) (int64, error)
	Top(ctx context.Context, k int) ([]WordCount, error)

	// Word list
	ImportWordList(ctx context.Context, path string) (int64, error)
	CountTokens(ctx context.Context) (int64, error)
	Words(ctx context.Context, limit int) ([]string, error)
}

// WordCount pairs a token with the number of records whose token set
// contained it.
type WordCount struct {
	Token string
	DF    int64
}

// defaultBatch is the spool lines folded per transaction in BuildDF.
const defaultBatch = 10000

// maxLine bounds one spool line.
const maxLine = 1 << 20

// BuildDF streams a spool file into the store in bounded batches. Token
// sets are deduplicated per record before spooling, so each spool line is
// one record-level occurrence and the accumulated counts are document
// frequencies. Returns the number of spool lines consumed.
func BuildDF(ctx context.Context, s Store, spoolPath string, batch int) (int64, error) {
	if batch <= 0 {
		batch = defaultBatch
	}

	f, err := os.Open(spoolPath)
	if err != nil {
		return 0, fmt.Errorf("open spool: %w", err)
	}
	defer f.Close()

	counts := make(map[string]int64, batch)
	var (
		total   int64
		pending int
	)
	flush := func() error {
		if len(counts) == 0 {
			return nil
		}
		if err := s.AddCounts(ctx, counts); err != nil {
			return err
		}
		counts = make(map[string]int64, batch)
		pending = 0
		return nil
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		counts[line]++
		total++
		pending++
		if pending >= batch {
			if err := flush(); err != nil {
				return 0, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read spool: %w", err)
	}
	if err := flush(); err != nil {
		return 0, err
	}
	return total, nil
}
