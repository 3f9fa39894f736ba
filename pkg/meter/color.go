package meter

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidStops 色标配置非法（未排序、有缺口、越界）
var ErrInvalidStops = errors.New("invalid color stops")

// RGB 8 位三通道颜色
// 实现 image/color.Color 接口，可直接交给 ebiten 绘制
type RGB struct {
	R, G, B uint8
}

// RGBA 实现 color.Color 接口（不透明）
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Hex 返回 "#rrggbb" 格式
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorStop 渐变色标
type ColorStop struct {
	Threshold float64 // 分数阈值（0-100）
	Color     RGB
}

// Gradient 分数 → 颜色的分段线性插值器
//
// 构造时即完成合法性校验，Resolve 本身不会失败。
type Gradient struct {
	idle          RGB
	idleThreshold float64
	stops         []ColorStop
}

// NewGradient 创建渐变解析器
// 参数：
//   - idle: 低于 idleThreshold 时返回的待机灰
//   - idleThreshold: 待机阈值（主表盘 2，拖拽表盘 5）
//   - stops: 严格递增的色标，最后一个阈值必须为 100
//
// 返回：
//   - 配置非法时返回包装了 ErrInvalidStops 的错误
func NewGradient(idle RGB, idleThreshold float64, stops []ColorStop) (*Gradient, error) {
	if err := validateStops(idleThreshold, stops); err != nil {
		return nil, err
	}

	cp := make([]ColorStop, len(stops))
	copy(cp, stops)

	return &Gradient{
		idle:          idle,
		idleThreshold: idleThreshold,
		stops:         cp,
	}, nil
}

// MustGradient 同 NewGradient，配置非法时 panic
// 仅用于包内的固定色表
func MustGradient(idle RGB, idleThreshold float64, stops []ColorStop) *Gradient {
	g, err := NewGradient(idle, idleThreshold, stops)
	if err != nil {
		panic(err)
	}
	return g
}

func validateStops(idleThreshold float64, stops []ColorStop) error {
	if math.IsNaN(idleThreshold) || idleThreshold < MinScore || idleThreshold > MaxScore {
		return fmt.Errorf("%w: idle threshold %v outside [0,100]", ErrInvalidStops, idleThreshold)
	}
	if len(stops) < 2 {
		return fmt.Errorf("%w: need at least 2 stops, got %d", ErrInvalidStops, len(stops))
	}

	for i, s := range stops {
		if math.IsNaN(s.Threshold) || s.Threshold < MinScore || s.Threshold > MaxScore {
			return fmt.Errorf("%w: stop %d threshold %v outside [0,100]", ErrInvalidStops, i, s.Threshold)
		}
		if i > 0 && s.Threshold <= stops[i-1].Threshold {
			return fmt.Errorf("%w: stop %d threshold %v not above previous %v",
				ErrInvalidStops, i, s.Threshold, stops[i-1].Threshold)
		}
	}

	// 首个色标必须覆盖待机阈值，否则 [idle, first) 之间没有区间
	if stops[0].Threshold > idleThreshold {
		return fmt.Errorf("%w: first stop %v leaves a gap above idle threshold %v",
			ErrInvalidStops, stops[0].Threshold, idleThreshold)
	}
	if last := stops[len(stops)-1].Threshold; last != MaxScore {
		return fmt.Errorf("%w: last stop must be 100, got %v", ErrInvalidStops, last)
	}

	return nil
}

// Resolve 计算分数对应的颜色
// 分数先被限制到 [0,100]；恰好落在阈值上时由较低的区间命中。
func (g *Gradient) Resolve(score float64) RGB {
	score = Clamp(score)
	if score < g.idleThreshold {
		return g.idle
	}

	first := g.stops[0]
	if score <= first.Threshold {
		return first.Color
	}

	for i := 0; i < len(g.stops)-1; i++ {
		start, end := g.stops[i], g.stops[i+1]
		if score >= start.Threshold && score <= end.Threshold {
			factor := (score - start.Threshold) / (end.Threshold - start.Threshold)
			return lerpRGB(start.Color, end.Color, factor)
		}
	}

	return g.stops[len(g.stops)-1].Color
}

// IdleThreshold 返回待机阈值
func (g *Gradient) IdleThreshold() float64 {
	return g.idleThreshold
}

// Stops 返回色标副本
func (g *Gradient) Stops() []ColorStop {
	cp := make([]ColorStop, len(g.stops))
	copy(cp, g.stops)
	return cp
}

func lerpRGB(a, b RGB, factor float64) RGB {
	return RGB{
		R: lerpChannel(a.R, b.R, factor),
		G: lerpChannel(a.G, b.G, factor),
		B: lerpChannel(a.B, b.B, factor),
	}
}

func lerpChannel(a, b uint8, factor float64) uint8 {
	v := math.Round(float64(a) + factor*(float64(b)-float64(a)))
	return uint8(math.Max(0, math.Min(255, v)))
}

// 内置色表

var (
	// IdleGrey 待机灰
	IdleGrey = RGB{0x52, 0x52, 0x52}

	colorCryo     = RGB{0x22, 0xD3, 0xEE}
	colorSurge    = RGB{0xFF, 0xE6, 0x00}
	colorActive   = RGB{0xFF, 0x6F, 0x2E}
	colorCritical = RGB{0xFF, 0x2F, 0x2F}
)

// PrimaryIdleThreshold 主表盘待机阈值
const PrimaryIdleThreshold = 2.0

// DialIdleThreshold 拖拽表盘待机阈值
const DialIdleThreshold = 5.0

// PrimaryStops 主表盘色标：灰 → 青 → 黄 → 橙 → 红
var PrimaryStops = []ColorStop{
	{Threshold: 2, Color: IdleGrey},
	{Threshold: 35, Color: colorCryo},
	{Threshold: 55, Color: colorSurge},
	{Threshold: 75, Color: colorActive},
	{Threshold: 100, Color: colorCritical},
}

// DialStops 拖拽表盘色标：与主表盘相比青、黄两个色标对调
// 两套色表都已上线，保持独立，不做合并
var DialStops = []ColorStop{
	{Threshold: 5, Color: IdleGrey},
	{Threshold: 35, Color: colorSurge},
	{Threshold: 55, Color: colorCryo},
	{Threshold: 75, Color: colorActive},
	{Threshold: 100, Color: colorCritical},
}

// PrimaryGradient 返回主表盘渐变
func PrimaryGradient() *Gradient {
	return MustGradient(IdleGrey, PrimaryIdleThreshold, PrimaryStops)
}

// DialGradient 返回拖拽表盘渐变
func DialGradient() *Gradient {
	return MustGradient(IdleGrey, DialIdleThreshold, DialStops)
}
