package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run load, driplines, combine and chart",
	Long: `Run executes every stage from the raw tables to the chart, stopping at the
first stage that fails. The chart is drawn only when chart.output is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, closeStore, err := openPipeline(true)
		if err != nil {
			return err
		}
		defer closeStore()
		_, err = p.Run(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
