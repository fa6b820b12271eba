package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Densentrated/disimilar-word-generator/pkg/vocab"
)

func newHTMLCmd() *cobra.Command {
	var (
		spoolPath string
		keepSpool bool
	)

	cmd := &cobra.Command{
		Use:   "html <dir> [output]",
		Short: "Extract the word list from a directory of saved HTML pages",
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

			count, err := vocab.ExtractHTML(cmd.Context(), vocab.ExtractOptions{
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
	cmd.Flags().BoolVar(&keepSpool, "keep-spool", false, "Keep the spool file after deduplication")

	return cmd
}
