package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Parse the raw tables into the artifact store",
	Long: `Load decodes every table named under inputs in the configuration and stores
the ground-state records. NUBASE is also stored as its stable and
beta-minus subsets, and the FRDM+QRPA Pn table is joined with its half-lives.
A malformed record stops the load and names the file, line and field.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, closeStore, err := openPipeline(true)
		if err != nil {
			return err
		}
		defer closeStore()
		_, err = p.Load(cmd.Context())
		return err
	},
}

func init() {
	for _, in := range []struct{ flag, key, usage string }{
		{"nubase", "inputs.nubase", "NUBASE table"},
		{"iaea-crp", "inputs.iaea_crp", "IAEA CRP beta-delayed neutron table"},
		{"frdm", "inputs.frdm", "FRDM2012 mass table"},
		{"ws36", "inputs.ws36", "WS3.6 mass table"},
		{"qrpa-pn", "inputs.qrpa_pn", "FRDM+QRPA Pn table"},
		{"qrpa-t12", "inputs.qrpa_half_life", "FRDM+QRPA half-life table"},
	} {
		loadCmd.Flags().String(in.flag, "", in.usage)
		_ = viper.BindPFlag(in.key, loadCmd.Flags().Lookup(in.flag))
	}

	rootCmd.AddCommand(loadCmd)
}
