package meter

import "time"

// 心跳脉冲
const (
	PulseThreshold = 90.0
	PulsePeriod    = 2500 * time.Millisecond
)

// Signals 由单个分数派生出的全部视觉信号
type Signals struct {
	Score          float64
	Color          RGB
	RotationPeriod time.Duration
	Zone           Zone
	StatusLabel    string

	NoiseOpacity    float64
	DistortionScale float64
	ShadowIntensity float64 // score/100
	GlowOpacity     float64

	Pulse       bool // score > 90 时开启心跳
	PulsePeriod time.Duration
}

// Derive 计算视觉信号（纯函数，不缓存）
// score 通常传入平滑后的值；阶段请使用原始分数单独分类
func (v *Variant) Derive(score float64) Signals {
	score = Clamp(score)
	idle := v.IdleThreshold()
	zone, _ := ZoneOf(score, idle)

	glow := v.GlowOpacity
	if zone == ZoneIdle {
		glow = 0
	}

	return Signals{
		Score:           score,
		Color:           v.Gradient.Resolve(score),
		RotationPeriod:  RotationPeriod(score),
		Zone:            zone,
		StatusLabel:     StatusLabel(score, idle),
		NoiseOpacity:    NoiseOpacity(score, idle),
		DistortionScale: DistortionScale(score),
		ShadowIntensity: score / MaxScore,
		GlowOpacity:     glow,
		Pulse:           score > PulseThreshold,
		PulsePeriod:     PulsePeriod,
	}
}
