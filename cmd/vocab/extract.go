package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab"
)

const defaultOutput = "extracted_words.txt"

func newExtractCmd() *cobra.Command {
	var (
		spoolPath  string
		resume     bool
		keepSpool  bool
		systemSort bool
	)

	cmd := &cobra.Command{
		Use:   "extract <dump> [output]",
		Short: "Parse a dump and produce the sorted unique word list",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := defaultOutput
			if len(args) > 1 {
				out = args[1]
			}

			runCfg := cfg
			if spoolPath != "" {
				runCfg.Spool.Path = spoolPath
			}
			if resume {
				runCfg.Spool.Resume = true
			}
			if systemSort {
				runCfg.Sort.UseSystemSort = true
			}

			count, err := vocab.Extract(cmd.Context(), vocab.ExtractOptions{
				Config:     runCfg,
				DumpPath:   args[0],
				OutputPath: out,
				KeepSpool:  keepSpool,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unique words written to %s\n", count, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&spoolPath, "spool", "", "Spool file path (overrides config)")
	cmd.Flags().BoolVar(&resume, "resume", false, "Append to an existing spool file instead of truncating it")
	cmd.Flags().BoolVar(&keepSpool, "keep-spool", false, "Keep the spool file after deduplication")
	cmd.Flags().BoolVar(&systemSort, "system-sort", false, "Use the system sort utility instead of the built-in merge sort")

	return cmd
}
