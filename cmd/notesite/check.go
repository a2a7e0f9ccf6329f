package main

import (
	"github.com/spf13/cobra"

	"notesite/internal/site"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest and content without writing output",
	Long: `Runs the full build pipeline — manifest resolution, rendering and
link verification — but writes nothing. Exits non-zero on an unresolved
navigation reference, or on broken links when strict mode is enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := site.NewBuilder(appCfg, log).Check(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("check passed", "pages", res.Pages, "assets", res.Assets, "warnings", len(res.Warnings))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
