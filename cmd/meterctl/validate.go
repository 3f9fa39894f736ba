package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gonewx/angrymeter/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Load and validate a meter config file",
	Long: `Loads a meter config, applies defaults and builds every variant.
Without a path the --config file (or the built-in defaults) is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		return runValidate(cmd.OutOrStdout(), path)
	},
}

func runValidate(w io.Writer, path string) error {
	cfg, err := config.ResolveMeterConfig(path)
	if err != nil {
		return err
	}
	cat, err := cfg.Build()
	if err != nil {
		return err
	}

	src := path
	if src == "" {
		src = "built-in defaults"
	}
	fmt.Fprintf(w, "%s: ok\n", src)
	for _, v := range cat.Variants {
		fmt.Fprintf(w, "  %-10s idle<%.0f breathing=%t glow=%.2f particles=%d\n",
			v.Name, v.IdleThreshold(), v.Breathing, v.GlowOpacity, v.ParticleCount)
	}
	fmt.Fprintf(w, "  effects    shake=%v flare=%v\n", cfg.Effects.Shake, cfg.Effects.Flare)
	return nil
}
