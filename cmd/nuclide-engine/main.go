// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nuclide-engine CLI. Each pipeline
// stage is a subcommand; run executes them all.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/nuclide-engine/internal/logging"
	"github.com/pdiddy/nuclide-engine/internal/pipeline"
	"github.com/pdiddy/nuclide-engine/internal/store"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in the root command's pre-run hook.
var logger = zap.NewNop()

const (
	defaultTimeout    = 60 * time.Second
	defaultDelay      = 1 * time.Second
	defaultMaxRetries = 5
	defaultUserAgent  = "nuclide-engine/0.1"
)

// rootCmd is the base command for the nuclide-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "nuclide-engine",
	Short: "Prepare and merge nuclear-physics datasets",
	Long: `nuclide-engine parses the NUBASE, IAEA CRP, FRDM2012, WS3.6 and FRDM+QRPA
tables, derives separation energies and beta-decay Q-values, merges the
datasets into the IAEA CRP evaluation, and draws the result on an N-Z chart.

Each stage is a subcommand that reads its inputs from the artifact store and
overwrites its outputs there: fetch, load, driplines, combine, report, chart.
run executes load through chart in one go.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nuclide-engine.yaml or ~/.config/nuclide-engine/nuclide-engine.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().String("store-dir", "store", "directory holding artifacts.db and export/")
	_ = viper.BindPFlag("store.dir", rootCmd.PersistentFlags().Lookup("store-dir"))

	viper.SetDefault("fetch.raw_dir", "raw")
	viper.SetDefault("fetch.timeout", defaultTimeout)
	viper.SetDefault("fetch.delay", defaultDelay)
	viper.SetDefault("fetch.max_retries", defaultMaxRetries)
	viper.SetDefault("fetch.user_agent", defaultUserAgent)
}

func initConfig() {
	// A missing .env is normal; anything else is worth a warning.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nuclide-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nuclide-engine"))
		}
	}

	viper.SetEnvPrefix("NUCLIDE_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env and file settings. Input paths
// are checked only when checkInputs is set, since stages past load never
// open them.
func loadConfig(checkInputs bool) (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if !checkInputs {
		cfg.Inputs = types.InputConfig{}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openPipeline loads the configuration and opens the store. The returned
// function closes the store.
func openPipeline(checkInputs bool) (*pipeline.Pipeline, *store.Store, func(), error) {
	cfg, err := loadConfig(checkInputs)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.Open(cfg.Store, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}
	return pipeline.New(cfg, st, logger, os.Stdout), st, closeFn, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
