package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/meter"
)

var inspectVariant string

var inspectCmd = &cobra.Command{
	Use:   "inspect <score>",
	Short: "Print every derived signal for one score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("score %q: %w", args[0], err)
		}
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		return runInspect(cmd.OutOrStdout(), cat, inspectVariant, score)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectVariant, "variant", "", "Only this variant (default: all)")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	keyStyle    = lipgloss.NewStyle().Width(18).Faint(true)
)

func runInspect(w io.Writer, cat *config.Catalog, only string, score float64) error {
	variants := cat.Variants
	if only != "" {
		v, err := pickVariant(cat, only)
		if err != nil {
			return err
		}
		variants = []*meter.Variant{v}
	}

	for i, v := range variants {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s := v.Derive(score)
		p := v.Classifier.Classify(score)
		ring, orbit, silo := meter.Ring(score), meter.Orbit(score), meter.Silo(score)

		row := func(k, format string, a ...any) {
			fmt.Fprintln(w, keyStyle.Render(k)+fmt.Sprintf(format, a...))
		}
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s @ %.1f", v.Name, s.Score)))
		row("color", "%s %s", swatch(s.Color), s.Color.Hex())
		row("zone", "%s (idle < %.0f)", s.Zone, v.IdleThreshold())
		row("status", "%s", s.StatusLabel)
		row("rotation", "%v", s.RotationPeriod)
		row("noise", "%.3f", s.NoiseOpacity)
		row("distortion", "%.2f", s.DistortionScale)
		row("shadow", "%.2f", s.ShadowIntensity)
		row("glow", "%.2f", s.GlowOpacity)
		row("pulse", "%t (%v)", s.Pulse, s.PulsePeriod)
		row("phase", "%s  %s", p.Label, p.Title)
		row("ticker", "%s", strings.Join(p.Ticker, " | "))
		row("ring", "r=%.1f dash=%.1f bar=%.1f glow=%.1f blur=%.2f",
			ring.NormalizedRadius, ring.DashOffset, ring.BarWidth, ring.TextGlow, ring.Blur)
		row("orbit", "reticle=%.1f° counter=%.1f°", orbit.Reticle, orbit.Counter)
		row("silo", "fill=%.0f%% wave=%t", silo.Fill*100, silo.WaveVisible)
	}
	return nil
}
