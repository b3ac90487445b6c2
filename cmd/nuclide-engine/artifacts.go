package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "List the artifact store contents",
	Long: `Artifacts lists every stored table with its record type, record count and
last update. With --runs it lists the recorded stage runs instead.`,
	RunE: runArtifacts,
}

func init() {
	artifactsCmd.Flags().Bool("runs", false, "list stage runs instead of artifacts")

	rootCmd.AddCommand(artifactsCmd)
}

func runArtifacts(cmd *cobra.Command, args []string) error {
	_, st, closeStore, err := openPipeline(false)
	if err != nil {
		return err
	}
	defer closeStore()
	ctx := cmd.Context()

	if runs, _ := cmd.Flags().GetBool("runs"); runs {
		list, err := st.Runs(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%-36s  %-10s  %-20s  %s\n", "ID", "STAGE", "STARTED", "SUMMARY")
		for _, r := range list {
			fmt.Printf("%-36s  %-10s  %-20s  %s\n", r.ID, r.Stage, r.StartedAt.Format("2006-01-02 15:04:05"), r.Summary)
		}
		return nil
	}

	list, err := st.List(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%-36s  %-8s  %8s  %s\n", "NAME", "KIND", "RECORDS", "UPDATED")
	for _, a := range list {
		fmt.Printf("%-36s  %-8s  %8d  %s\n", a.Name, a.Kind, a.RecordCount, a.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(os.Stdout, "\n%d artifacts in %s\n", len(list), st.Dir())
	return nil
}
