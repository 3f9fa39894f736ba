// Package main is meterctl, a terminal companion for the angry meter engine.
//
// Usage:
//
//	meterctl [--config path] [--verbose] <command>
//
// Commands:
//
//	trace     Replay a scripted score sequence and print sampled frames
//	inspect   Print every derived signal for one score
//	validate  Load and validate a meter config file
//	tui       Interactive terminal dashboard (hot-reloads --config)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gonewx/angrymeter/pkg/config"
)

var (
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "meterctl",
	Short: "Inspect, trace and preview angry meter configurations",
	Long: `meterctl drives the angry meter engine without a window.

It loads the same data/meter.yaml the desktop host embeds (or the file
given with --config) and replays scores through the real frame loop.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Meter config file (default: built-in defaults)")

	rootCmd.AddCommand(traceCmd, inspectCmd, validateCmd, tuiCmd)
}

// loadCatalog resolves --config into runnable variants.
func loadCatalog() (*config.Catalog, error) {
	cfg, err := config.ResolveMeterConfig(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
