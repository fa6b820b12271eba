package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/internalerr"
)

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := `
parse:
  max_text_lines: 500
sort:
  use_system_sort: true
stopwords:
  - và
  - của
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Parse.MaxTextLines)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().Parse.ProgressInterval, cfg.Parse.ProgressInterval)
	assert.Equal(t, Default().Spool.Path, cfg.Spool.Path)
	assert.True(t, cfg.Sort.UseSystemSort)
	assert.Equal(t, []string{"và", "của"}, cfg.Stopwords)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero cap", "parse:\n  max_text_lines: 0\n"},
		{"negative interval", "parse:\n  progress_interval: -1\n"},
		{"empty spool path", "spool:\n  path: \"\"\n"},
		{"zero chunk bytes", "sort:\n  chunk_bytes: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vocab.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parse: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
