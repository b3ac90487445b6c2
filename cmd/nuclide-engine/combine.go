package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge complement datasets into the IAEA CRP reference",
	Long: `Combine adds NUBASE beta-minus emitters and then FRDM+QRPA predictions that
the IAEA CRP evaluation lacks. A nuclide accepted from a more trusted source
is never replaced by a later one. The complements and the combined table are
stored as separate artifacts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, closeStore, err := openPipeline(false)
		if err != nil {
			return err
		}
		defer closeStore()
		_, err = p.Combine(cmd.Context())
		return err
	},
}

func init() {
	combineCmd.Flags().Bool("restrict-to-bound", false, "only add FRDM+QRPA nuclides inside the FRDM drip lines")
	_ = viper.BindPFlag("merge.restrict_to_bound", combineCmd.Flags().Lookup("restrict-to-bound"))

	rootCmd.AddCommand(combineCmd)
}
