package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/store/sqlite"
)

func newViewCmd() *cobra.Command {
	var (
		dbPath string
		n      int
	)

	cmd := &cobra.Command{
		Use:   "view [wordlist]",
		Short: "Show the head of a word list, or the top tokens of a frequency database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath != "" {
				return viewDB(cmd, dbPath, n)
			}
			if len(args) == 0 {
				return fmt.Errorf("either a word list path or --db is required")
			}
			return viewFile(cmd, args[0], n)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Frequency database to query instead of a word list file")
	cmd.Flags().IntVarP(&n, "count", "n", 20, "Number of entries to show")

	return cmd
}

// viewFile prints the first n lines of a word list.
func viewFile(cmd *cobra.Command, path string, n int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for i := 0; i < n && sc.Scan(); i++ {
		fmt.Fprintln(cmd.OutOrStdout(), sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read word list: %w", err)
	}
	return nil
}

// viewDB prints the n highest document-frequency tokens.
func viewDB(cmd *cobra.Command, path string, n int) error {
	ctx := cmd.Context()

	st, err := sqlite.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	top, err := st.Top(ctx, n)
	if err != nil {
		return err
	}
	for _, wc := range top {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", wc.Token, wc.DF)
	}
	return nil
}
