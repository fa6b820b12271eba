// Package vocab turns Wikipedia dump streams into sorted, deduplicated
// Vietnamese word lists using bounded memory regardless of corpus size.
package vocab

import (
	"context"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/config"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/dump"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/extsort"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/markup"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/spool"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/tokenize"
)

// Stats tracks parse-phase progress. Counters are monotonically increasing
// and safe for concurrent reads while the pipeline runs. Progress reporting
// only; not part of the correctness contract.
type Stats struct {
	processed atomic.Int64
	matched   atomic.Int64
	spooled   atomic.Int64
	dropped   atomic.Int64
}

// Processed returns the number of records handled.
func (s *Stats) Processed() int64 { return s.processed.Load() }

// Matched returns the number of records that produced tokens.
func (s *Stats) Matched() int64 { return s.matched.Load() }

// Spooled returns the number of tokens written to the spool.
func (s *Stats) Spooled() int64 { return s.spooled.Load() }

// Dropped returns the number of oversized records abandoned.
func (s *Stats) Dropped() int64 { return s.dropped.Load() }

// Pipeline wires the parse phase together: dump parser, markup stripper,
// token extractor and spooler. One Pipeline owns exactly one spool writer,
// and one record is fully processed before the next record's bytes are
// consumed.
type Pipeline struct {
	cfg   config.Config
	ext   *tokenize.Extractor
	sp    *spool.Spooler
	log   *zap.Logger
	stats Stats
}

// Options configures a Pipeline.
type Options struct {
	Config  config.Config
	Spooler *spool.Spooler
	Logger  *zap.Logger
}

// NewPipeline creates a Pipeline with the given dependencies.
func NewPipeline(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		cfg: opts.Config,
		ext: tokenize.New(tokenize.Options{Stopwords: opts.Config.Stopwords}),
		sp:  opts.Spooler,
		log: log,
	}
}

// Stats exposes the live progress counters.
func (p *Pipeline) Stats() *Stats { return &p.stats }

// ParseStream consumes the decoded dump stream line by line, spooling each
// completed record's token set. A stream read error aborts the run.
func (p *Pipeline) ParseStream(ctx context.Context, r io.Reader) error {
	parser := dump.NewParser(dump.ParserOptions{
		MaxTextLines: p.cfg.Parse.MaxTextLines,
		Emit: func(rec dump.Record) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return p.handleRecord(rec)
		},
		OnDrop: func(lines int) {
			p.stats.dropped.Add(1)
			p.log.Debug("dropped oversized record", zap.Int("lines", lines))
		},
	})
	return parser.Run(r)
}

// handleRecord strips, extracts and spools one record.
func (p *Pipeline) handleRecord(rec dump.Record) error {
	n := p.stats.processed.Add(1)

	tokens := p.ext.Extract(markup.Strip(rec.Text))
	if len(tokens) > 0 {
		p.stats.matched.Add(1)
		if err := p.sp.Append(tokens); err != nil {
			return err
		}
		p.stats.spooled.Add(int64(len(tokens)))
	}

	if interval := int64(p.cfg.Parse.ProgressInterval); interval > 0 && n%interval == 0 {
		p.log.Info("progress",
			zap.Int64("records", n),
			zap.Int64("matched", p.stats.matched.Load()),
			zap.Int64("tokens", p.stats.spooled.Load()))
	}
	return nil
}

// ExtractOptions configures a full extraction run.
type ExtractOptions struct {
	Config config.Config
	// DumpPath is the input dump file (plain, .gz or .bz2).
	DumpPath string
	// OutputPath receives the final sorted unique word list.
	OutputPath string
	// Sorter overrides the config-selected sort mechanism. Optional.
	Sorter extsort.Sorter
	// KeepSpool leaves the spool file in place after deduplication.
	KeepSpool bool
	Logger    *zap.Logger
}

// Extract runs both phases end to end: parse the dump into the spool,
// finalize it, then externally sort and deduplicate into the final word
// list. Returns the number of unique words written.
func Extract(ctx context.Context, opts ExtractOptions) (int64, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	in, err := dump.Open(opts.DumpPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	sp, err := spool.Open(opts.Config.Spool.Path, opts.Config.Spool.Resume)
	if err != nil {
		return 0, err
	}

	p := NewPipeline(Options{Config: opts.Config, Spooler: sp, Logger: log})
	if err := p.ParseStream(ctx, in); err != nil {
		sp.Close()
		return 0, err
	}
	if err := sp.Close(); err != nil {
		return 0, err
	}
	log.Info("parse phase complete",
		zap.Int64("records", p.stats.processed.Load()),
		zap.Int64("matched", p.stats.matched.Load()),
		zap.Int64("dropped", p.stats.dropped.Load()),
		zap.Int64("tokens", sp.Written()))

	return finishSpool(ctx, opts, sp.Path(), log)
}

// finishSpool runs the dedup phase over a finalized spool file.
func finishSpool(ctx context.Context, opts ExtractOptions, spoolPath string, log *zap.Logger) (int64, error) {
	sorter := opts.Sorter
	if sorter == nil {
		sorter = SorterFromConfig(opts.Config.Sort)
	}
	count, err := extsort.Run(ctx, sorter, spoolPath, opts.OutputPath)
	if err != nil {
		return 0, err
	}
	if !opts.KeepSpool {
		if err := os.Remove(spoolPath); err != nil {
			log.Warn("remove spool", zap.Error(err))
		}
	}
	log.Info("dedup phase complete", zap.Int64("unique_words", count))
	return count, nil
}

// SorterFromConfig builds the configured external sort mechanism.
func SorterFromConfig(c config.SortConfig) extsort.Sorter {
	if c.UseSystemSort {
		return &extsort.ExecSorter{}
	}
	return &extsort.ChunkSorter{
		ChunkBytes:  c.ChunkBytes,
		ScratchDir:  c.ScratchDir,
		Parallelism: c.Parallelism,
	}
}
