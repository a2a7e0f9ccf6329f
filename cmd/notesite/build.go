package main

import (
	"github.com/spf13/cobra"

	"notesite/internal/site"
)

var buildStrict bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site",
	Long: `Reads the navigation manifest and the docs directory, validates that
every navigation entry resolves to an existing document, renders every
document to HTML and writes the site to the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildStrict {
			appCfg.Strict = true
		}
		_, err := site.NewBuilder(appCfg, log).Build(cmd.Context())
		return err
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "fail the build on broken links or images in rendered output")
	rootCmd.AddCommand(buildCmd)
}
