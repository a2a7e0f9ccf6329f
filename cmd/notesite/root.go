package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"notesite/internal/config"
)

var (
	cfgFile string
	verbose bool

	appCfg config.Config
	log    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "notesite",
	Short: "Render a tree of markdown notes into a static documentation site",
	Long: `notesite reads a navigation manifest plus a directory of markdown
documents and produces a static, browsable site: one HTML page per document,
a sidebar mirroring the manifest hierarchy, and images copied alongside.

A build either fully succeeds or fails fast: a navigation entry referencing
a missing document aborts before any output is written.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		appCfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		return appCfg.Validate()
	},
}

// Execute runs the CLI; any error exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("notesite failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./notesite.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
