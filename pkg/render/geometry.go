// Package render 用 ebiten 绘制表盘
//
// geometry.go 只包含纯计算，绘制代码在 draw.go。
package render

import (
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/gonewx/angrymeter/pkg/meter"
)

// Point 屏幕坐标
type Point struct {
	X, Y float64
}

// Polar 以正上方为 0 度、顺时针为正的极坐标转换
func Polar(cx, cy, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: cx + r*math.Sin(rad), Y: cy - r*math.Cos(rad)}
}

// ArcPoints 计算圆弧折线的顶点
// 参数：
//   - cx, cy, r: 圆心与半径
//   - startDeg, sweepDeg: 起始角与扫过角度（度）
//   - segments: 整圈的分段数，按扫过比例取整
//
// 返回：
//   - []Point: 至少 2 个点；sweepDeg 为 0 时返回 nil
func ArcPoints(cx, cy, r, startDeg, sweepDeg float64, segments int) []Point {
	if sweepDeg == 0 {
		return nil
	}
	n := int(math.Ceil(math.Abs(sweepDeg) / 360 * float64(segments)))
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = Polar(cx, cy, r, startDeg+sweepDeg*float64(i)/float64(n))
	}
	return pts
}

// SpinAngle 按周期匀速旋转的角度（度，0-360）
func SpinAngle(now, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	return float64(now%period) / float64(period) * 360
}

// PulseFactor 脉冲亮度 0-1，周期起点为最亮
func PulseFactor(now, period time.Duration) float64 {
	if period <= 0 {
		return 1
	}
	t := float64(now%period) / float64(period)
	return 0.5 + 0.5*math.Cos(2*math.Pi*t)
}

// WithAlpha 给表盘颜色加上透明度
func WithAlpha(c meter.RGB, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

// GlowAlpha 环境光透明度，脉冲时随周期起伏
func GlowAlpha(f meter.Frame) float64 {
	a := f.GlowOpacity
	if f.Pulse {
		a *= 0.5 + 0.5*PulseFactor(f.Now, f.PulsePeriod)
	}
	if f.Flare.Active {
		a = math.Min(1, a+f.Flare.Intensity*0.5)
	}
	return a
}

// formatScore 分数显示为整数
func formatScore(score float64) string {
	return strconv.Itoa(int(math.Round(meter.Clamp(score))))
}
