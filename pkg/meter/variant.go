package meter

import "time"

// 各表盘的环境光透明度
const (
	TurbineGlowOpacity = 0.35
	SiloGlowOpacity    = 0.30
	OrbitGlowOpacity   = 0.25
)

// Variant 一种表盘配置
//
// 主表盘（turbine）与拖拽表盘（dial）使用不同的待机阈值和色表，
// 两者都已上线，作为两套具名配置并存。
type Variant struct {
	Name       string
	Gradient   *Gradient
	Classifier *PhaseClassifier

	// Breathing 是否在平滑值上叠加呼吸项
	Breathing bool
	// GlowOpacity 环境光透明度（待机时为 0）
	GlowOpacity float64

	ParticleCount int
	Styles        StyleSet
	Geometry      Geometry

	ShakeDuration time.Duration
	FlareDuration time.Duration
}

// PrimaryVariant 主表盘（涡轮）
func PrimaryVariant() *Variant {
	return &Variant{
		Name:          "primary",
		Gradient:      PrimaryGradient(),
		Classifier:    DefaultPhaseClassifier(),
		Breathing:     true,
		GlowOpacity:   TurbineGlowOpacity,
		ParticleCount: DefaultParticleCount,
		Styles:        DefaultStyles,
		Geometry:      DefaultGeometry,
		ShakeDuration: ShakeDuration,
		FlareDuration: FlareDuration,
	}
}

// DialVariant 拖拽表盘（筒仓/轨道）
func DialVariant() *Variant {
	return &Variant{
		Name:          "dial",
		Gradient:      DialGradient(),
		Classifier:    DefaultPhaseClassifier(),
		Breathing:     false,
		GlowOpacity:   SiloGlowOpacity,
		ParticleCount: DefaultParticleCount,
		Styles:        DefaultStyles,
		Geometry:      DefaultGeometry,
		ShakeDuration: ShakeDuration,
		FlareDuration: FlareDuration,
	}
}

// IdleThreshold 待机阈值
func (v *Variant) IdleThreshold() float64 {
	return v.Gradient.IdleThreshold()
}
