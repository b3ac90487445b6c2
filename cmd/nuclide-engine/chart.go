package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw the stored datasets on an N-Z chart",
	Long: `Chart renders the bound region, the complement datasets and the IAEA CRP
nuclides as an SVG chart of nuclides with dashed lines at the magic numbers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, closeStore, err := openPipeline(false)
		if err != nil {
			return err
		}
		defer closeStore()
		_, err = p.Chart(cmd.Context())
		return err
	},
}

func init() {
	chartCmd.Flags().StringP("output", "o", "charts/complement.svg", "SVG file to write")
	chartCmd.Flags().Int("max-n", 0, "largest neutron number drawn (default 200)")
	chartCmd.Flags().Int("max-z", 0, "largest proton number drawn (default 116)")
	_ = viper.BindPFlag("chart.output", chartCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("chart.max_n", chartCmd.Flags().Lookup("max-n"))
	_ = viper.BindPFlag("chart.max_z", chartCmd.Flags().Lookup("max-z"))

	rootCmd.AddCommand(chartCmd)
}
