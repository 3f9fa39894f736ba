package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/dashboard"
	"github.com/gonewx/angrymeter/pkg/meter"
)

var (
	traceVariant  string
	traceScript   string
	traceDuration time.Duration
	traceEvery    time.Duration
	traceSeed     uint64
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Replay a scripted score sequence through the frame loop",
	Long: `Replays a score script at 60 frames per second and prints sampled frames.
Frames carrying a phase escalation are always printed.

The script is a comma separated list of time=score steps, e.g.
  meterctl trace --script "0s=0,500ms=80,2s=20" --duration 3s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		steps, err := parseScript(traceScript)
		if err != nil {
			return err
		}
		return runTrace(cmd.OutOrStdout(), cat, traceOptions{
			Variant:  traceVariant,
			Steps:    steps,
			Duration: traceDuration,
			Every:    traceEvery,
			Seed:     traceSeed,
		})
	},
}

func init() {
	traceCmd.Flags().StringVar(&traceVariant, "variant", "", "Variant name (default: first in config)")
	traceCmd.Flags().StringVar(&traceScript, "script", "0s=0,500ms=80,2s=20", "Score script, time=score pairs")
	traceCmd.Flags().DurationVar(&traceDuration, "duration", 3*time.Second, "Total replay time")
	traceCmd.Flags().DurationVar(&traceEvery, "every", 250*time.Millisecond, "Sampling interval")
	traceCmd.Flags().Uint64Var(&traceSeed, "seed", 1, "Particle RNG seed")
}

type scriptStep struct {
	At    time.Duration
	Score float64
}

// parseScript parses "0s=0,500ms=80" into steps sorted by time.
func parseScript(s string) ([]scriptStep, error) {
	var steps []scriptStep
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		at, score, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("script step %q: want time=score", part)
		}
		d, err := time.ParseDuration(strings.TrimSpace(at))
		if err != nil {
			return nil, fmt.Errorf("script step %q: %w", part, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("script step %q: negative time", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
		if err != nil {
			return nil, fmt.Errorf("script step %q: %w", part, err)
		}
		steps = append(steps, scriptStep{At: d, Score: v})
	}
	if len(steps) == 0 {
		return nil, errors.New("script is empty")
	}
	slices.SortStableFunc(steps, func(a, b scriptStep) int {
		return cmp.Compare(a.At, b.At)
	})
	return steps, nil
}

type traceOptions struct {
	Variant  string
	Steps    []scriptStep
	Duration time.Duration
	Every    time.Duration
	Seed     uint64
}

var (
	eventStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// runTrace replays the script on a FrameQueue, the same way the hosts drive meters.
func runTrace(w io.Writer, cat *config.Catalog, opts traceOptions) error {
	v, err := pickVariant(cat, opts.Variant)
	if err != nil {
		return err
	}
	if opts.Every <= 0 {
		opts.Every = dashboard.TickInterval
	}

	initial := 0.0
	steps := opts.Steps
	if len(steps) > 0 && steps[0].At == 0 {
		initial, steps = steps[0].Score, steps[1:]
	}

	m, err := meter.New(v,
		meter.WithLogger(logger),
		meter.WithInitialScore(initial),
		meter.WithRand(rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))))
	if err != nil {
		return err
	}
	defer m.Dispose()

	queue := meter.NewFrameQueue()
	var nextSample time.Duration
	var escalations int
	err = m.Start(queue, func(f meter.Frame) {
		if f.Transition.Occurred {
			escalations++
		}
		if f.Now >= nextSample || f.Transition.Occurred {
			fmt.Fprintln(w, formatFrame(f))
			for nextSample <= f.Now {
				nextSample += opts.Every
			}
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s  variant=%s  initial=%.0f\n", mutedStyle.Render("trace"), v.Name, initial)
	for now := dashboard.TickInterval; now <= opts.Duration; now += dashboard.TickInterval {
		for len(steps) > 0 && steps[0].At <= now {
			m.SetScore(steps[0].Score)
			steps = steps[1:]
		}
		queue.Run(now)
	}
	fmt.Fprintf(w, "%s  escalations=%d\n", mutedStyle.Render("done"), escalations)
	return nil
}

func pickVariant(cat *config.Catalog, name string) (*meter.Variant, error) {
	if name == "" {
		if len(cat.Variants) == 0 {
			return nil, errors.New("config has no variants")
		}
		return cat.Variants[0], nil
	}
	v, ok := cat.Variant(name)
	if !ok {
		return nil, fmt.Errorf("unknown variant %q (have %s)", name, strings.Join(cat.Names(), ", "))
	}
	return v, nil
}

// swatch renders two cells in the frame colour.
func swatch(c meter.RGB) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

func formatFrame(f meter.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%7.3fs  raw %5.1f  smooth %5.1f  %s %s  %-10s %-9s %-8s",
		f.Now.Seconds(), f.Raw, f.Motion.Value, swatch(f.Color), f.Color.Hex(),
		f.StatusLabel, f.Zone, f.Phase.Phase)
	if f.Transition.Occurred {
		b.WriteString("  " + eventStyle.Render(fmt.Sprintf("%s→%s", f.Transition.From, f.Transition.To)))
	}
	var fx []string
	if f.Shake.Active {
		fx = append(fx, fmt.Sprintf("shake %+.1fpx", f.Shake.OffsetX))
	}
	if f.Flare.Active {
		fx = append(fx, fmt.Sprintf("flare %.2f", f.Flare.Intensity))
	}
	if f.Pulse {
		fx = append(fx, "pulse")
	}
	if len(fx) > 0 {
		b.WriteString("  " + mutedStyle.Render(strings.Join(fx, " ")))
	}
	return b.String()
}
