// Package sqlite implements the word store on SQLite.
package sqlite

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a word store database with WAL mode.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS token_df (
	token TEXT PRIMARY KEY,
	df INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS words (
	token TEXT PRIMARY KEY
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddCounts folds a batch of per-token increments into token_df in one
// transaction. Keys are applied in sorted order so runs are reproducible.
func (s *sqliteStore) AddCounts(ctx context.Context, counts map[string]int64) error {
	if len(counts) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(counts))
	for tok := range counts {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO token_df (token, df) VALUES (?, ?)
		ON CONFLICT(token) DO UPDATE SET df = df + excluded.df`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, tok := range tokens {
		if _, err := stmt.ExecContext(ctx, tok, counts[tok]); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// TokenDF returns the document frequency of a token, zero when unseen.
func (s *sqliteStore) TokenDF(ctx context.Context, token string) (int64, error) {
	var df int64
	err := s.db.QueryRowContext(ctx,
		"SELECT df FROM token_df WHERE token = ?", token).Scan(&df)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return df, nil
}

// Top returns the k highest-frequency tokens, ties broken alphabetically.
func (s *sqliteStore) Top(ctx context.Context, k int) ([]store.WordCount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT token, df FROM token_df ORDER BY df DESC, token ASC LIMIT ?", k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.WordCount
	for rows.Next() {
		var wc store.WordCount
		if err := rows.Scan(&wc.Token, &wc.DF); err != nil {
			return nil, err
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

// ImportWordList loads a final word list file into the words table.
// Returns the number of lines imported.
func (s *sqliteStore) ImportWordList(ctx context.Context, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO words (token) VALUES (?)")
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	var count int64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, line); err != nil {
			tx.Rollback()
			return 0, err
		}
		count++
	}
	if err := sc.Err(); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("read word list: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// CountTokens returns the number of imported words.
func (s *sqliteStore) CountTokens(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM words").Scan(&n)
	return n, err
}

// Words returns up to limit imported words in byte order.
func (s *sqliteStore) Words(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT token FROM words ORDER BY token LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, rows.Err()
}
