package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nuclide-engine/internal/fetch"
	"github.com/pdiddy/nuclide-engine/internal/httputil"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the raw input tables",
	Long: `Fetch downloads every table listed under fetch.sources in the configuration
into the raw directory. Files already on disk are skipped, so a partial fetch
can be resumed. HTTP 429 and 503 responses are retried with backoff. A
sources.yaml manifest records what was downloaded and when.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	fetchCmd.Flags().String("raw-dir", "", "directory for downloaded tables (default raw)")
	_ = viper.BindPFlag("fetch.timeout", fetchCmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("fetch.delay", fetchCmd.Flags().Lookup("delay"))
	_ = viper.BindPFlag("fetch.raw_dir", fetchCmd.Flags().Lookup("raw-dir"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	var cfg types.FetchConfig
	if err := viper.UnmarshalKey("fetch", &cfg); err != nil {
		return fmt.Errorf("decoding fetch configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("no sources configured; add fetch.sources to the config file")
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	result := fetch.All(cmd.Context(), client, cfg, os.Stdout, logger)
	if result.HasFailures() {
		return fmt.Errorf("%d table(s) failed to download", result.Failed)
	}
	return nil
}
