package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gonewx/angrymeter/internal/tui"
	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/dashboard"
)

var tuiScore float64

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal dashboard",
	Long: `Shows every configured meter in the terminal, driven at 60 frames per second.
With --config the file is watched and re-applied on save; a rejected edit
keeps the previous meters running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		d, err := dashboard.New(cat, tuiScore, nil, logger)
		if err != nil {
			return err
		}
		defer d.Close()

		var w *config.Watcher
		if configPath != "" {
			if w, err = config.NewWatcher(configPath, config.DefaultDebounce, logger); err != nil {
				return err
			}
		}
		return runTUI(cmd.Context(), d, w)
	},
}

func init() {
	tuiCmd.Flags().Float64Var(&tuiScore, "score", 0, "Initial score")
}

// runTUI runs the program and the optional watcher until the program exits.
func runTUI(ctx context.Context, d *dashboard.Dashboard, w *config.Watcher) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	var updates <-chan config.Update
	if w != nil {
		updates = w.Updates()
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(tui.New(d, updates), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()
		return err
	})
	return g.Wait()
}
