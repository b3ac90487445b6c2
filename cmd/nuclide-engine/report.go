package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the records added to the IAEA CRP reference",
	Long: `Report prints one fixed-width line per record the combine stage added, with
its half-life, delayed-neutron probabilities and source. Unavailable values
print as -9999.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, closeStore, err := openPipeline(false)
		if err != nil {
			return err
		}
		defer closeStore()

		out := os.Stdout
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}
		_, err = p.Report(cmd.Context(), out)
		return err
	},
}

func init() {
	reportCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")

	rootCmd.AddCommand(reportCmd)
}
