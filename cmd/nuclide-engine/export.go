package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/nuclide-engine/internal/pipeline"
)

var exportCmd = &cobra.Command{
	Use:   "export [artifacts...]",
	Short: "Write stored artifacts as YAML or JSON files",
	Long: `Export writes each named artifact, or every artifact when none is named, to
<store-dir>/export/<name>.yaml or .json. Unavailable values are written as
-9999.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		p, _, closeStore, err := openPipeline(false)
		if err != nil {
			return err
		}
		defer closeStore()
		_, err = p.Export(cmd.Context(), args, format)
		return err
	},
}

func init() {
	exportCmd.Flags().String("format", pipeline.FormatYAML, "output format: yaml or json")

	rootCmd.AddCommand(exportCmd)
}
