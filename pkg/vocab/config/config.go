// Package config holds the tunable parameters of the extraction pipeline.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/internalerr"
)

// Config is the full pipeline configuration. Start from Default; the zero
// value does not validate.
type Config struct {
	Parse     ParseConfig `yaml:"parse"`
	Spool     SpoolConfig `yaml:"spool"`
	Sort      SortConfig  `yaml:"sort"`
	Stopwords []string    `yaml:"stopwords"`
}

// ParseConfig bounds the parse phase.
type ParseConfig struct {
	// MaxTextLines caps the accumulated text of a single record.
	MaxTextLines int `yaml:"max_text_lines"`
	// ProgressInterval is the record count between progress log lines.
	ProgressInterval int `yaml:"progress_interval"`
}

// SpoolConfig locates the intermediate token file.
type SpoolConfig struct {
	Path string `yaml:"path"`
	// Resume appends to an existing spool instead of truncating it.
	Resume bool `yaml:"resume"`
}

// SortConfig tunes the dedup phase.
type SortConfig struct {
	ChunkBytes  int    `yaml:"chunk_bytes"`
	ScratchDir  string `yaml:"scratch_dir"`
	Parallelism int    `yaml:"parallelism"`
	// UseSystemSort selects the sort(1) subprocess instead of the built-in
	// chunked merge sort.
	UseSystemSort bool `yaml:"use_system_sort"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Parse: ParseConfig{
			MaxTextLines:     10000,
			ProgressInterval: 1000,
		},
		Spool: SpoolConfig{
			Path: "temp_words_all.txt",
		},
		Sort: SortConfig{
			ChunkBytes: 64 << 20,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that would unbound the pipeline.
func (c Config) Validate() error {
	if c.Parse.MaxTextLines <= 0 {
		return fmt.Errorf("%w: parse.max_text_lines must be positive", internalerr.ErrInvalidConfig)
	}
	if c.Parse.ProgressInterval <= 0 {
		return fmt.Errorf("%w: parse.progress_interval must be positive", internalerr.ErrInvalidConfig)
	}
	if c.Spool.Path == "" {
		return fmt.Errorf("%w: spool.path must be set", internalerr.ErrInvalidConfig)
	}
	if c.Sort.ChunkBytes <= 0 {
		return fmt.Errorf("%w: sort.chunk_bytes must be positive", internalerr.ErrInvalidConfig)
	}
	if c.Sort.Parallelism < 0 {
		return fmt.Errorf("%w: sort.parallelism must not be negative", internalerr.ErrInvalidConfig)
	}
	return nil
}
