// Package main 是桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose          Enable verbose logging
//	--config <path>    Load meter config from disk and hot-reload it on save
//	--score <n>        Initial score (0-100)
//	--mute             Disable escalation cues
//
// Controls:
//
//	Left/Right Arrow  - Score -1/+1 (hold to repeat)
//	Up/Down Arrow     - Score +10/-10
//	Mouse drag        - Drag the slider
//	R                 - Reset score to 0
//	F11               - Toggle fullscreen
package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/gonewx/angrymeter/pkg/app"
	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Meter config file to load and watch (default: built-in data/meter.yaml)")
	scoreFlag   = flag.Float64("score", 0, "Initial score")
	muteFlag    = flag.Bool("mute", false, "Disable escalation cues")
)

func main() {
	flag.Parse()

	logger := zap.NewNop()
	if *verboseFlag {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("日志初始化失败: %v", err)
		}
		logger = l
	}
	defer logger.Sync() //nolint:errcheck

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var updates <-chan config.Update
	if *configFlag != "" {
		w, err := config.NewWatcher(*configFlag, config.DefaultDebounce, logger)
		if err != nil {
			log.Fatalf("配置监听失败: %v", err)
		}
		updates = w.Updates()
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Warn("config watcher exited", zap.Error(err))
			}
		}()
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Score:      *scoreFlag,
		Logger:     logger,
		Updates:    updates,
		Mute:       *muteFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Angry Meter")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		logger.Error("game loop exited", zap.Error(err))
	}
}
