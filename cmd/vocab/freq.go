package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/store"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/store/sqlite"
)

func newFreqCmd() *cobra.Command {
	var (
		dbPath string
		batch  int
	)

	cmd := &cobra.Command{
		Use:   "freq <spool>",
		Short: "Build a document-frequency database from a spool file",
		Long: `Counts how many records each token appeared in. Token sets are
deduplicated per record before spooling, so each spool line is one
record-level occurrence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := sqlite.Open(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			n, err := store.BuildDF(ctx, st, args[0], batch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "counted %d spool lines into %s\n", n, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "words.db", "SQLite database path")
	cmd.Flags().IntVar(&batch, "batch", 0, "Spool lines per transaction (0 = default)")

	return cmd
}
