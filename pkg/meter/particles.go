package meter

import (
	"fmt"
	"iter"
	"math"
	"math/rand/v2"
	"time"
)

// DefaultParticleCount 每个发射器的粒子数
const DefaultParticleCount = 30

// DegreesPerPoint 每 1 分对应的圆周角度
const DegreesPerPoint = 3.6

// ParticleKind 粒子动画类型
type ParticleKind int

const (
	ParticleMist   ParticleKind = iota // 缓慢漂移的雾
	ParticleSpark                      // 快速火花
	ParticlePlasma                     // 中速等离子
)

func (k ParticleKind) String() string {
	switch k {
	case ParticleMist:
		return "mist"
	case ParticleSpark:
		return "spark"
	case ParticlePlasma:
		return "plasma"
	}
	return fmt.Sprintf("ParticleKind(%d)", int(k))
}

// ParseParticleKind 解析粒子类型名称
func ParseParticleKind(s string) (ParticleKind, error) {
	switch s {
	case "mist":
		return ParticleMist, nil
	case "spark":
		return ParticleSpark, nil
	case "plasma":
		return ParticlePlasma, nil
	}
	return 0, fmt.Errorf("unknown particle kind %q", s)
}

// ParticleStyle 某一阶段下的粒子外观
type ParticleStyle struct {
	Kind         ParticleKind
	MinDuration  time.Duration
	MaxDuration  time.Duration
	Spread       float64 // 角度散布（度），以发射点为中心
	RadiusJitter float64 // 半径抖动（像素）
}

// StyleSet 阶段 → 粒子外观
type StyleSet map[Phase]ParticleStyle

// DefaultStyles 内置粒子外观
var DefaultStyles = StyleSet{
	PhaseSimmer: {
		Kind:         ParticleMist,
		MinDuration:  1 * time.Second,
		MaxDuration:  2 * time.Second,
		Spread:       24,
		RadiusJitter: 10,
	},
	PhaseAgitation: {
		Kind:         ParticleSpark,
		MinDuration:  100 * time.Millisecond,
		MaxDuration:  300 * time.Millisecond,
		Spread:       12,
		RadiusJitter: 6,
	},
	PhaseRage: {
		Kind:         ParticlePlasma,
		MinDuration:  400 * time.Millisecond,
		MaxDuration:  800 * time.Millisecond,
		Spread:       18,
		RadiusJitter: 8,
	},
}

// Geometry 发射几何
type Geometry struct {
	Radius  float64 // 发射圆半径（像素）
	MinSize float64 // 粒子最小尺寸
	MaxSize float64 // 粒子最大尺寸
}

// DefaultGeometry 主表盘几何：半径 80、描边 14，取描边中线
var DefaultGeometry = Geometry{
	Radius:  73,
	MinSize: 1,
	MaxSize: 4,
}

// ParticleDescriptor 粒子的随机种子
// 在发射器创建时一次性生成，整个生命周期不变
type ParticleDescriptor struct {
	ID         int
	AngleSeed  float64 // [0,1)
	RadiusSeed float64 // [0,1)
	Delay      float64 // [0,1)，按当前动画时长缩放
	Size       float64 // 像素
}

// Particle 某一帧的粒子输出
type Particle struct {
	ParticleDescriptor

	Kind       ParticleKind
	Duration   time.Duration
	StartDelay time.Duration
	Angle      float64 // 弧度，0 指向正上方，顺时针增加
	OffsetX    float64 // 相对表盘中心
	OffsetY    float64
}

// ParticleEmitter 随机粒子发射器
type ParticleEmitter struct {
	batch  []ParticleDescriptor
	styles StyleSet
	geom   Geometry
}

// NewParticleEmitter 创建发射器并一次性生成随机种子
// 参数：
//   - count: 粒子数（<= 0 时使用 DefaultParticleCount）
//   - rng: 随机源（nil 时使用随机种子）
//   - styles: 各阶段外观（nil 时使用 DefaultStyles）
func NewParticleEmitter(count int, rng *rand.Rand, styles StyleSet, geom Geometry) *ParticleEmitter {
	if count <= 0 {
		count = DefaultParticleCount
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if styles == nil {
		styles = DefaultStyles
	}

	batch := make([]ParticleDescriptor, count)
	for i := range batch {
		batch[i] = ParticleDescriptor{
			ID:         i,
			AngleSeed:  rng.Float64(),
			RadiusSeed: rng.Float64(),
			Delay:      rng.Float64(),
			Size:       geom.MinSize + rng.Float64()*(geom.MaxSize-geom.MinSize),
		}
	}

	return &ParticleEmitter{
		batch:  batch,
		styles: styles,
		geom:   geom,
	}
}

// Descriptors 返回随机种子副本
func (e *ParticleEmitter) Descriptors() []ParticleDescriptor {
	cp := make([]ParticleDescriptor, len(e.batch))
	copy(cp, e.batch)
	return cp
}

// Len 粒子数
func (e *ParticleEmitter) Len() int {
	return len(e.batch)
}

// Active 返回当前帧的粒子序列
// 静止时为空序列；每次调用都返回一个新的、有限的序列
func (e *ParticleEmitter) Active(phase Phase, state MotionState) iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		if !state.Moving {
			return
		}
		style, ok := e.styles[phase]
		if !ok {
			return
		}

		tip := state.Value * DegreesPerPoint
		for _, d := range e.batch {
			if !yield(e.place(d, style, tip)) {
				return
			}
		}
	}
}

// place 按外观和发射点计算单个粒子
func (e *ParticleEmitter) place(d ParticleDescriptor, style ParticleStyle, tipDeg float64) Particle {
	span := style.MaxDuration - style.MinDuration
	duration := style.MinDuration + time.Duration(d.RadiusSeed*float64(span))

	deg := tipDeg + (d.AngleSeed-0.5)*style.Spread
	rad := deg * math.Pi / 180
	r := e.geom.Radius + (d.RadiusSeed-0.5)*style.RadiusJitter

	return Particle{
		ParticleDescriptor: d,
		Kind:               style.Kind,
		Duration:           duration,
		StartDelay:         time.Duration(d.Delay * float64(duration)),
		Angle:              rad,
		OffsetX:            r * math.Sin(rad),
		OffsetY:            -r * math.Cos(rad),
	}
}
