// Package app 提供桌面端与移动端共用的表盘应用
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	toneaudio "github.com/gonewx/angrymeter/internal/audio"
	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/dashboard"
	"github.com/gonewx/angrymeter/pkg/meter"
	"github.com/gonewx/angrymeter/pkg/render"
)

// 逻辑屏幕尺寸
const (
	WindowWidth  = 960
	WindowHeight = 540
)

// 滑块位置
const (
	sliderX     = 120.0
	sliderY     = 490.0
	sliderWidth = WindowWidth - 2*sliderX
	sliderHit   = 24.0
)

// 方向键长按连发：首次按下后等待 repeatDelay 个 tick，之后每 repeatEvery 个 tick 一次
const (
	repeatDelay = 24
	repeatEvery = 3
)

var background = color.RGBA{R: 0x0b, G: 0x0d, B: 0x12, A: 0xff}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 表盘配置文件，为空时使用内置配置
	ConfigPath string
	// Score 初始分数
	Score float64
	// Logger 结构化日志，为 nil 时不输出
	Logger *zap.Logger
	// Updates 配置热加载结果，可为 nil
	Updates <-chan config.Update
	// Mute 不创建音频上下文
	Mute bool
}

// App 是表盘应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	logger    *zap.Logger
	dashboard *dashboard.Dashboard
	renderer  *render.Renderer
	updates   <-chan config.Update
	verbose   bool

	dragging                 bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化表盘应用
//
// 使用内置配置时，调用此函数前必须先调用 embedded.Init() 注入 data/ 资源，
// 否则回退到代码中的默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	meterCfg, err := config.ResolveMeterConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("表盘配置加载失败: %w", err)
	}
	catalog, err := meterCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("表盘配置无效: %w", err)
	}

	var cues dashboard.CuePlayer
	if !cfg.Mute {
		p, err := newTonePlayer(audio.NewContext(toneaudio.DefaultSampleRate))
		if err != nil {
			return nil, fmt.Errorf("提示音生成失败: %w", err)
		}
		cues = p
	}

	dash, err := dashboard.New(catalog, cfg.Score, cues, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("app started",
		zap.Strings("variants", catalog.Names()),
		zap.Float64("score", dash.Score()))

	return &App{
		logger:    logger,
		dashboard: dash,
		renderer:  render.NewRenderer(catalog.Alpha, uint64(time.Now().UnixNano())),
		updates:   cfg.Updates,
		verbose:   cfg.Verbose,
	}, nil
}

// Update 更新表盘逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.pollConfig()
	a.handleInput()
	a.dashboard.Step(dashboard.TickInterval)
	return nil
}

// pollConfig 非阻塞地读取热加载结果
func (a *App) pollConfig() {
	if a.updates == nil {
		return
	}
	select {
	case u, ok := <-a.updates:
		if !ok {
			a.updates = nil
			return
		}
		if err := a.dashboard.Apply(u); err == nil {
			a.renderer.SetAlpha(a.dashboard.Catalog().Alpha)
		}
	default:
	}
}

func (a *App) handleInput() {
	score := a.dashboard.Score()

	switch {
	case KeyRepeat(inpututil.KeyPressDuration(ebiten.KeyArrowRight), repeatDelay, repeatEvery):
		score++
	case KeyRepeat(inpututil.KeyPressDuration(ebiten.KeyArrowLeft), repeatDelay, repeatEvery):
		score--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		score += 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		score -= 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		score = 0
	}

	// 只有在滑块附近按下才开始拖动，之后指针可以离开滑块
	p := ReadPointer()
	switch {
	case p.JustPressed && nearSlider(p.Y):
		a.dragging = true
	case !p.Down:
		a.dragging = false
	}
	if a.dragging {
		score = sliderScore(p.X)
	}

	if score != a.dashboard.Score() {
		a.dashboard.SetScore(score)
	}
}

func nearSlider(y float64) bool {
	return y >= sliderY-sliderHit && y <= sliderY+sliderHit
}

// sliderScore 将指针横坐标换算为分数
func sliderScore(x float64) float64 {
	return meter.Clamp((x - sliderX) / sliderWidth * meter.MaxScore)
}

// Draw 绘制表盘画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	gauges := a.dashboard.Gauges()
	noise := 0.0
	for i, g := range gauges {
		cx := WindowWidth * (float64(i) + 0.5) / float64(len(gauges))
		const cy = 220.0
		switch g.Name {
		case "silo":
			a.renderer.Silo(screen, cx-40, cy-100, 80, 200, g.Frame)
		case "orbit":
			a.renderer.Orbit(screen, cx, cy, g.Frame)
		default:
			a.renderer.Turbine(screen, cx, cy, g.Frame)
		}
		noise = max(noise, g.Frame.NoiseOpacity)
	}
	a.renderer.Noise(screen, noise)

	c := meter.IdleGrey
	if len(gauges) > 0 {
		c = gauges[0].Frame.Color
	}
	a.renderer.Slider(screen, sliderX, sliderY, sliderWidth, a.dashboard.Score(), c)
	help := "LEFT/RIGHT +-1   UP/DOWN +-10   R reset   drag slider   F11 fullscreen"
	if IsMobile() {
		help = "drag the slider"
	}
	ebitenutil.DebugPrintAt(screen, help, 12, 8)
	if a.verbose {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %0.1f  score %.0f", ebiten.ActualTPS(), a.dashboard.Score()), 12, WindowHeight-20)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Dashboard 返回表盘集合
func (a *App) Dashboard() *dashboard.Dashboard {
	return a.dashboard
}

// Close 销毁全部表盘
func (a *App) Close() {
	a.dashboard.Close()
	a.logger.Info("app closed")
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
