package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/extsort"
)

func newDedupCmd() *cobra.Command {
	var systemSort bool

	cmd := &cobra.Command{
		Use:   "dedup <spool> [output]",
		Short: "Sort and deduplicate an existing spool file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := defaultOutput
			if len(args) > 1 {
				out = args[1]
			}

			sortCfg := cfg.Sort
			if systemSort {
				sortCfg.UseSystemSort = true
			}

			count, err := extsort.Run(cmd.Context(), vocab.SorterFromConfig(sortCfg), args[0], out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unique words written to %s\n", count, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&systemSort, "system-sort", false, "Use the system sort utility instead of the built-in merge sort")

	return cmd
}
