// Package dashboard 多块表盘共用一个分数的宿主逻辑
//
// 与渲染无关，ebiten 桌面端和终端界面都基于它运行。
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/meter"
)

// TickInterval 宿主每个 tick 推进的时钟
const TickInterval = time.Second / 60

// CuePlayer 阶段升级时的提示音
type CuePlayer interface {
	Play(to meter.Phase)
}

// Gauge 仪表板上的一块表盘及其最新一帧
type Gauge struct {
	Name  string
	Meter *meter.Meter
	Frame meter.Frame
}

// Dashboard 共用一个分数的一组表盘
//
// 所有表盘挂在同一个 FrameQueue 上，由宿主每个 tick 调用一次 Step 驱动。
// 不能跨 goroutine 使用。
type Dashboard struct {
	logger  *zap.Logger
	queue   *meter.FrameQueue
	cues    CuePlayer
	catalog *config.Catalog
	gauges  []*Gauge

	now   time.Duration
	score float64
}

// New 按配置创建全部表盘并开始调度
// 参数：
//   - cat: 表盘配置集合
//   - score: 初始分数，作为阶段检测的基线，不会触发升级特效
//   - cues: 可为 nil（静音）
//   - logger: 可为 nil
func New(cat *config.Catalog, score float64, cues CuePlayer, logger *zap.Logger) (*Dashboard, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dashboard{
		logger: logger,
		queue:  meter.NewFrameQueue(),
		cues:   cues,
		score:  meter.Clamp(score),
	}
	if err := d.install(cat); err != nil {
		return nil, err
	}
	return d, nil
}

// install 用新配置替换全部表盘，失败时保持原状
func (d *Dashboard) install(cat *config.Catalog) error {
	if cat == nil || len(cat.Variants) == 0 {
		return errors.New("dashboard: catalog has no variants")
	}

	gauges := make([]*Gauge, 0, len(cat.Variants))
	for _, v := range cat.Variants {
		m, err := meter.New(v,
			meter.WithLogger(d.logger),
			meter.WithInitialScore(d.score))
		if err != nil {
			for _, g := range gauges {
				g.Meter.Dispose()
			}
			return fmt.Errorf("dashboard: variant %q: %w", v.Name, err)
		}
		gauges = append(gauges, &Gauge{Name: v.Name, Meter: m, Frame: m.Last()})
	}

	for _, g := range d.gauges {
		g.Meter.Dispose()
	}
	d.gauges = gauges
	d.catalog = cat

	for _, g := range gauges {
		if err := g.Meter.Start(d.queue, func(f meter.Frame) { g.Frame = f }); err != nil {
			return fmt.Errorf("dashboard: start %q: %w", g.Name, err)
		}
	}
	return nil
}

// Step 推进时钟并运行一帧
func (d *Dashboard) Step(dt time.Duration) {
	d.now += dt
	d.queue.Run(d.now)

	// 所有表盘共用分数，同一帧只播放一次提示音
	for _, g := range d.gauges {
		ev := g.Frame.Transition
		if ev.Occurred && g.Frame.Now == d.now {
			d.logger.Info("phase escalated",
				zap.Stringer("from", ev.From),
				zap.Stringer("to", ev.To),
				zap.Float64("score", d.score))
			if d.cues != nil {
				d.cues.Play(ev.To)
			}
			break
		}
	}
}

// SetScore 设置全部表盘的分数
func (d *Dashboard) SetScore(score float64) {
	d.score = meter.Clamp(score)
	for _, g := range d.gauges {
		g.Meter.SetScore(d.score)
	}
}

// Score 当前分数
func (d *Dashboard) Score() float64 {
	return d.score
}

// Now 宿主时钟
func (d *Dashboard) Now() time.Duration {
	return d.now
}

// Gauges 按展示顺序返回表盘
func (d *Dashboard) Gauges() []*Gauge {
	return d.gauges
}

// Catalog 当前生效的配置
func (d *Dashboard) Catalog() *config.Catalog {
	return d.catalog
}

// Apply 应用一次热加载结果
// 新配置无效时记录日志并继续使用旧表盘；成功时按当前分数重建全部表盘
func (d *Dashboard) Apply(u config.Update) error {
	if u.Err != nil {
		d.logger.Warn("keeping previous meter config", zap.Error(u.Err))
		return u.Err
	}
	if u.Config == nil {
		return errors.New("dashboard: empty config update")
	}
	cat, err := u.Config.Build()
	if err != nil {
		d.logger.Warn("keeping previous meter config", zap.Error(err))
		return err
	}
	if err := d.install(cat); err != nil {
		d.logger.Warn("keeping previous meter config", zap.Error(err))
		return err
	}
	d.logger.Info("meter config applied", zap.Strings("variants", cat.Names()))
	return nil
}

// Close 销毁全部表盘
func (d *Dashboard) Close() {
	for _, g := range d.gauges {
		g.Meter.Dispose()
	}
}
