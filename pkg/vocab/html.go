package vocab

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/htmltext"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/spool"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/tokenize"
)

// ExtractHTML runs the pipeline over a directory tree of saved HTML pages.
// Each page is treated as one record: its visible text goes through the
// same diacritic gate and token extraction, its token set is spooled, and
// the spool is deduplicated exactly like a dump run. DumpPath names the
// directory. Returns the number of unique words written.
func ExtractHTML(ctx context.Context, opts ExtractOptions) (int64, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sp, err := spool.Open(opts.Config.Spool.Path, opts.Config.Spool.Resume)
	if err != nil {
		return 0, err
	}

	ext := tokenize.New(tokenize.Options{Stopwords: opts.Config.Stopwords})
	var pages, matched int64

	err = filepath.WalkDir(opts.DumpPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isHTMLFile(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open page: %w", err)
		}
		text, err := htmltext.ExtractText(f)
		f.Close()
		if err != nil {
			// A single broken page should not sink the whole corpus.
			log.Warn("skip unparseable page", zap.String("path", path), zap.Error(err))
			return nil
		}

		pages++
		tokens := ext.Extract(text)
		if len(tokens) == 0 {
			return nil
		}
		matched++
		return sp.Append(tokens)
	})
	if err != nil {
		sp.Close()
		return 0, err
	}
	if err := sp.Close(); err != nil {
		return 0, err
	}
	log.Info("html parse complete",
		zap.Int64("pages", pages),
		zap.Int64("matched", matched),
		zap.Int64("tokens", sp.Written()))

	return finishSpool(ctx, opts, sp.Path(), log)
}

func isHTMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}
