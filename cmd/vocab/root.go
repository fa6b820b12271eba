package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Densentrated/disimilar-word-generator/internal/logging"
	"github.com/Densentrated/disimilar-word-generator/pkg/vocab/config"
)

var (
	cfgFile  string
	logLevel string
	cfg      config.Config
	logger   *zap.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vocab",
		Short:         "Vietnamese vocabulary extraction from Wikipedia dumps",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded

			l, err := logging.New(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional YAML config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newDedupCmd())
	cmd.AddCommand(newHTMLCmd())
	cmd.AddCommand(newFreqCmd())
	cmd.AddCommand(newViewCmd())

	return cmd
}
