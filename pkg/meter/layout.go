package meter

import "math"

// 涡轮表盘几何（viewBox 200x200）
const (
	RingRadius      = 80.0
	RingStrokeWidth = 14.0
)

// RingLayout 涡轮表盘派生尺寸
type RingLayout struct {
	NormalizedRadius float64 // 描边中线半径
	Circumference    float64
	DashOffset       float64 // 未点亮部分的弧长
	TextGlow         float64 // 数字外发光半径 score*0.2
	BarWidth         float64 // 标签下方进度条宽度 20+score*0.4
	Blur             float64 // 扭曲时的数字模糊 distortion*0.1
}

// Ring 计算涡轮表盘尺寸
func Ring(score float64) RingLayout {
	score = Clamp(score)
	r := RingRadius - RingStrokeWidth/2
	c := r * 2 * math.Pi
	return RingLayout{
		NormalizedRadius: r,
		Circumference:    c,
		DashOffset:       c - score/MaxScore*c,
		TextGlow:         score * 0.2,
		BarWidth:         20 + score*0.4,
		Blur:             DistortionScale(score) * 0.1,
	}
}

// OrbitLayout 轨道表盘角度（度）
type OrbitLayout struct {
	Reticle float64 // 主准星 score*2.4
	Counter float64 // 反向环 -0.5x
}

// Orbit 计算轨道表盘角度
func Orbit(score float64) OrbitLayout {
	rot := Clamp(score) * 2.4
	return OrbitLayout{Reticle: rot, Counter: -rot * 0.5}
}

// SiloWaveCutoff 超过该值隐藏液面波浪，避免顶部圆角处出现缝隙
const SiloWaveCutoff = 98.0

// SiloLayout 筒仓表盘
type SiloLayout struct {
	Fill        float64 // 液面高度比例 0-1
	WaveVisible bool
}

// Silo 计算筒仓表盘
func Silo(score float64) SiloLayout {
	score = Clamp(score)
	return SiloLayout{
		Fill:        score / MaxScore,
		WaveVisible: score <= SiloWaveCutoff,
	}
}
