package main

import (
	"github.com/spf13/cobra"
)

var driplinesCmd = &cobra.Command{
	Use:   "driplines",
	Short: "Derive separation energies and bound nuclides",
	Long: `Driplines computes one- and two-nucleon separation energies and beta-decay
Q-values for the stored FRDM and WS3.6 tables, then stores the nuclides
bound against every separation. For WS3.6 it also stores the beta-delayed
neutron candidates (Qb > 0 and Qbn > 0).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, closeStore, err := openPipeline(false)
		if err != nil {
			return err
		}
		defer closeStore()
		_, err = p.Driplines(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(driplinesCmd)
}
