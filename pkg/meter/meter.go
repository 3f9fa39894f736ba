package meter

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDisposed 表盘已销毁
var ErrDisposed = errors.New("meter disposed")

// Frame 单帧输出
type Frame struct {
	Now time.Duration
	Raw float64 // 原始分数

	Signals // 由平滑值派生

	Phase      PhaseInfo // 由原始分数派生
	Motion     MotionState
	Transition TransitionEvent
	Shake      ShakeState
	Flare      FlareState
	Particles  []Particle
}

// Option 表盘可选项
type Option func(*Meter)

// WithLogger 设置日志
func WithLogger(l *zap.Logger) Option {
	return func(m *Meter) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRand 设置粒子随机源（测试中用于固定种子）
func WithRand(r *rand.Rand) Option {
	return func(m *Meter) {
		m.rng = r
	}
}

// WithInitialScore 设置初始原始分数，检测器以其阶段作为初始等级
func WithInitialScore(score float64) Option {
	return func(m *Meter) {
		m.raw = Clamp(score)
	}
}

// Meter 单个表盘实例
//
// 组合平滑器、阶段检测器和粒子发射器。多个实例之间完全独立。
// 只能由一个帧回调链驱动，不能并发调用。
type Meter struct {
	id      uuid.UUID
	variant *Variant
	logger  *zap.Logger
	rng     *rand.Rand

	raw      float64
	smoother *MotionSmoother
	detector *TransitionDetector
	emitter  *ParticleEmitter

	// 调度生命周期
	scheduler FrameScheduler
	pending   FrameID
	running   bool
	disposed  bool
	onFrame   func(Frame)

	last Frame
}

// New 创建表盘
func New(v *Variant, opts ...Option) (*Meter, error) {
	if v == nil {
		return nil, fmt.Errorf("meter: variant is required")
	}
	if v.Gradient == nil {
		return nil, fmt.Errorf("meter %s: gradient is required", v.Name)
	}
	if v.Classifier == nil {
		return nil, fmt.Errorf("meter %s: classifier is required", v.Name)
	}

	m := &Meter{
		id:      uuid.New(),
		variant: v,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.smoother = NewMotionSmoother(0, v.Breathing)
	m.detector = NewTransitionDetector(PhaseOf(m.raw), v.ShakeDuration, v.FlareDuration)
	m.emitter = NewParticleEmitter(v.ParticleCount, m.rng, v.Styles, v.Geometry)
	m.logger = m.logger.With(
		zap.String("meter_id", m.id.String()),
		zap.String("variant", v.Name),
	)

	m.logger.Debug("meter created",
		zap.Float64("initial_score", m.raw),
		zap.Stringer("phase", m.detector.Current()),
		zap.Int("particles", m.emitter.Len()))

	return m, nil
}

// ID 实例 ID
func (m *Meter) ID() uuid.UUID {
	return m.id
}

// Variant 当前配置
func (m *Meter) Variant() *Variant {
	return m.variant
}

// SetScore 推送新的原始分数（越界值被限制）
func (m *Meter) SetScore(score float64) {
	m.raw = Clamp(score)
}

// Score 当前原始分数
func (m *Meter) Score() float64 {
	return m.raw
}

// Last 最近一帧
func (m *Meter) Last() Frame {
	return m.last
}

// Emitter 粒子发射器
func (m *Meter) Emitter() *ParticleEmitter {
	return m.emitter
}

// Tick 推进一帧并返回输出
// 已销毁的表盘不再更新，返回最后一帧
func (m *Meter) Tick(now time.Duration) Frame {
	if m.disposed {
		return m.last
	}

	phase := m.variant.Classifier.Classify(m.raw)
	ev := m.detector.Observe(phase.Phase, now)
	if ev.Occurred {
		m.logger.Debug("phase escalated",
			zap.Stringer("from", ev.From),
			zap.Stringer("to", ev.To),
			zap.Float64("raw", m.raw),
			zap.Duration("at", now))
	}

	motion := m.smoother.Tick(m.raw, now)

	f := Frame{
		Now:        now,
		Raw:        m.raw,
		Signals:    m.variant.Derive(motion.Value),
		Phase:      phase,
		Motion:     motion,
		Transition: ev,
		Shake:      m.detector.Shake(now),
		Flare:      m.detector.Flare(now),
		Particles:  slices.Collect(m.emitter.Active(phase.Phase, motion)),
	}
	m.last = f
	return f
}

// Start 挂到调度器上逐帧运行
// onFrame 可为 nil；重复调用无副作用
func (m *Meter) Start(s FrameScheduler, onFrame func(Frame)) error {
	if m.disposed {
		return ErrDisposed
	}
	if s == nil {
		return fmt.Errorf("meter: scheduler is required")
	}
	if m.running {
		return nil
	}

	m.scheduler = s
	m.onFrame = onFrame
	m.running = true
	m.pending = s.RequestFrame(m.frame)

	m.logger.Debug("meter started")
	return nil
}

// Stop 撤销已申请的下一帧回调
func (m *Meter) Stop() {
	if !m.running {
		return
	}
	m.running = false
	if m.pending != 0 {
		m.scheduler.CancelFrame(m.pending)
		m.pending = 0
	}
	m.logger.Debug("meter stopped")
}

// Dispose 停止并销毁，之后的 Tick / Start 不再生效
func (m *Meter) Dispose() {
	m.Stop()
	m.disposed = true
	m.onFrame = nil
}

// Running 是否正在调度
func (m *Meter) Running() bool {
	return m.running
}

// Disposed 是否已销毁
func (m *Meter) Disposed() bool {
	return m.disposed
}

func (m *Meter) frame(now time.Duration) {
	m.pending = 0
	if !m.running {
		return
	}

	f := m.Tick(now)
	if m.onFrame != nil {
		m.onFrame(f)
	}

	// onFrame 里可能调用了 Stop
	if m.running {
		m.pending = m.scheduler.RequestFrame(m.frame)
	}
}
