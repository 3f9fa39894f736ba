package render

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/angrymeter/internal/particle"
	"github.com/gonewx/angrymeter/pkg/meter"
)

// DebugPrint 字形尺寸
const (
	glyphW = 6
	glyphH = 16
)

const (
	noiseSize    = 128
	arcSegments  = 120
	dashCount    = 12
	dashSweepDeg = 12
)

var (
	trackColor = color.NRGBA{R: 0x52, G: 0x52, B: 0x52, A: 0x40}
	flareColor = meter.RGB{R: 255, G: 255, B: 255}
	// 色差偏移使用的两种颜色
	aberrationA = meter.RGB{R: 255, G: 0, B: 80}
	aberrationB = meter.RGB{R: 0, G: 230, B: 255}
)

// Renderer 表盘绘制器
// 只能在 ebiten 的 Draw 中使用
type Renderer struct {
	alpha map[meter.Phase]particle.Curve
	rng   *rand.Rand

	noise   *ebiten.Image
	scratch *ebiten.Image
}

// NewRenderer 创建绘制器
// 参数：
//   - alpha: 各阶段粒子透明度曲线，可为 nil（粒子不透明）
//   - seed: 噪点纹理随机种子
func NewRenderer(alpha map[meter.Phase]particle.Curve, seed uint64) *Renderer {
	return &Renderer{
		alpha: alpha,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// SetAlpha 替换粒子透明度曲线（配置热加载后调用）
func (r *Renderer) SetAlpha(alpha map[meter.Phase]particle.Curve) {
	r.alpha = alpha
}

// Turbine 绘制涡轮表盘
func (r *Renderer) Turbine(dst *ebiten.Image, cx, cy float64, f meter.Frame) {
	cx += f.Shake.OffsetX
	ring := meter.Ring(f.Score)

	r.glow(dst, cx, cy, meter.RingRadius+15, f)

	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(ring.NormalizedRadius),
		meter.RingStrokeWidth, trackColor, true)
	r.arc(dst, cx, cy, ring.NormalizedRadius, 0, f.Score*meter.DegreesPerPoint,
		meter.RingStrokeWidth, WithAlpha(f.Color, 1))

	// 外圈虚线按旋转周期转动
	spin := SpinAngle(f.Now, f.RotationPeriod)
	for i := 0; i < dashCount; i++ {
		start := spin + float64(i)*360/dashCount
		r.arc(dst, cx, cy, meter.RingRadius+12, start, dashSweepDeg, 2, WithAlpha(f.Color, 0.6))
	}

	r.particles(dst, cx, cy, f)
	r.flare(dst, cx, cy, ring.NormalizedRadius, f)

	r.score(dst, cx, cy, f)
	r.caption(dst, cx, cy+meter.RingRadius+24, f)

	// 标签下方的进度条
	bar := float32(ring.BarWidth)
	vector.DrawFilledRect(dst, float32(cx)-bar/2, float32(cy)+22, bar, 2, WithAlpha(f.Color, 0.8), true)
}

// Silo 绘制筒仓表盘
func (r *Renderer) Silo(dst *ebiten.Image, x, y, w, h float64, f meter.Frame) {
	x += f.Shake.OffsetX
	s := meter.Silo(f.Score)

	r.glow(dst, x+w/2, y+h/2, h/2, f)
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 2, trackColor, true)

	fill := h * s.Fill
	top := y + h - fill
	vector.DrawFilledRect(dst, float32(x), float32(top), float32(w), float32(fill), WithAlpha(f.Color, 0.85), true)

	if s.WaveVisible && fill > 0 {
		phase := SpinAngle(f.Now, f.RotationPeriod) * math.Pi / 180
		prev := Point{X: x, Y: top + 3*math.Sin(phase)}
		for px := x + 4; px <= x+w; px += 4 {
			cur := Point{X: px, Y: top + 3*math.Sin(phase+(px-x)/w*2*math.Pi)}
			vector.StrokeLine(dst, float32(prev.X), float32(prev.Y), float32(cur.X), float32(cur.Y),
				2, WithAlpha(f.Color, 1), true)
			prev = cur
		}
	}

	if f.Flare.Active {
		vector.StrokeRect(dst, float32(x-2), float32(y-2), float32(w+4), float32(h+4), 3,
			WithAlpha(flareColor, f.Flare.Intensity*0.7), true)
	}

	r.text(dst, f.StatusLabel, x+w/2, y-14, 1, WithAlpha(f.Color, 1))
	r.text(dst, formatScore(f.Score), x+w/2, y+h+14, 2, WithAlpha(f.Color, 1))
}

// Orbit 绘制轨道表盘
func (r *Renderer) Orbit(dst *ebiten.Image, cx, cy float64, f meter.Frame) {
	cx += f.Shake.OffsetX
	o := meter.Orbit(f.Score)
	const radius = 60

	r.glow(dst, cx, cy, radius+20, f)
	vector.StrokeCircle(dst, float32(cx), float32(cy), radius, 6, trackColor, true)
	r.arc(dst, cx, cy, radius, 0, f.Score*meter.DegreesPerPoint, 6, WithAlpha(f.Color, 1))

	// 准星随分数旋转，反向环以 -0.5 倍转动
	for i := 0; i < 4; i++ {
		deg := o.Reticle + float64(i)*90
		a := Polar(cx, cy, radius-18, deg)
		b := Polar(cx, cy, radius-6, deg)
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, WithAlpha(f.Color, 1), true)
	}
	for i := 0; i < 6; i++ {
		r.arc(dst, cx, cy, radius+10, o.Counter+float64(i)*60, 20, 2, WithAlpha(f.Color, 0.5))
	}

	r.flare(dst, cx, cy, radius, f)
	r.text(dst, formatScore(f.Score), cx, cy, 2, WithAlpha(f.Color, 1))
	r.text(dst, f.StatusLabel, cx, cy+radius+24, 1, WithAlpha(f.Color, 1))
}

// Noise 全屏噪点叠加
func (r *Renderer) Noise(dst *ebiten.Image, opacity float64) {
	if opacity <= 0 {
		return
	}
	if r.noise == nil {
		r.noise = r.makeNoise()
	}

	b := dst.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(opacity))
	// 每帧随机平移，噪点才会"跳动"
	ox := float64(r.rng.IntN(noiseSize))
	oy := float64(r.rng.IntN(noiseSize))
	for y := -oy; y < float64(b.Dy()); y += noiseSize {
		for x := -ox; x < float64(b.Dx()); x += noiseSize {
			op.GeoM.Reset()
			op.GeoM.Translate(x, y)
			dst.DrawImage(r.noise, op)
		}
	}
}

// Slider 绘制分数滑块
func (r *Renderer) Slider(dst *ebiten.Image, x, y, w, score float64, c meter.RGB) {
	vector.StrokeLine(dst, float32(x), float32(y), float32(x+w), float32(y), 4, trackColor, true)
	knob := x + w*meter.Clamp(score)/meter.MaxScore
	vector.StrokeLine(dst, float32(x), float32(y), float32(knob), float32(y), 4, WithAlpha(c, 1), true)
	vector.DrawFilledCircle(dst, float32(knob), float32(y), 8, WithAlpha(c, 1), true)
}

func (r *Renderer) makeNoise() *ebiten.Image {
	pix := make([]byte, noiseSize*noiseSize*4)
	for i := 0; i < len(pix); i += 4 {
		v := byte(r.rng.IntN(256))
		pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 255
	}
	img := ebiten.NewImage(noiseSize, noiseSize)
	img.WritePixels(pix)
	return img
}

func (r *Renderer) glow(dst *ebiten.Image, cx, cy, radius float64, f meter.Frame) {
	a := GlowAlpha(f)
	if a <= 0 {
		return
	}
	// 两层叠加近似模糊光晕
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(radius*1.25), WithAlpha(f.Color, a*0.25), true)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(radius), WithAlpha(f.Color, a*0.4), true)
}

func (r *Renderer) arc(dst *ebiten.Image, cx, cy, radius, startDeg, sweepDeg float64, width float32, c color.Color) {
	pts := ArcPoints(cx, cy, radius, startDeg, sweepDeg, arcSegments)
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(dst, float32(pts[i-1].X), float32(pts[i-1].Y), float32(pts[i].X), float32(pts[i].Y),
			width, c, true)
	}
}

func (r *Renderer) particles(dst *ebiten.Image, cx, cy float64, f meter.Frame) {
	curve, hasCurve := r.alpha[f.Phase.Phase]
	for _, p := range f.Particles {
		progress := particle.LoopProgress(f.Now, p.StartDelay, p.Duration)
		a := 1.0
		if hasCurve {
			a = curve.At(progress)
		}
		if a <= 0 {
			continue
		}

		// 雾向外漂移，火花与等离子原地闪烁
		drift := 1.0
		if p.Kind == meter.ParticleMist {
			drift += 0.15 * progress
		}
		x := cx + p.OffsetX*drift
		y := cy + p.OffsetY*drift
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(p.Size), WithAlpha(f.Color, a), true)
	}
}

func (r *Renderer) flare(dst *ebiten.Image, cx, cy, radius float64, f meter.Frame) {
	if !f.Flare.Active {
		return
	}
	grow := radius + (1-f.Flare.Intensity)*25
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(grow), 4,
		WithAlpha(flareColor, f.Flare.Intensity*0.6), true)
}

// score 居中放大绘制分数，扭曲时叠加色差偏移
func (r *Renderer) score(dst *ebiten.Image, cx, cy float64, f meter.Frame) {
	s := formatScore(f.Score)
	if f.ShadowIntensity > 0 {
		r.text(dst, s, cx+2, cy+2, 3, color.NRGBA{A: uint8(f.ShadowIntensity * 150)})
	}
	if d := f.DistortionScale; d > 0 {
		r.text(dst, s, cx-d, cy, 3, WithAlpha(aberrationA, 0.5))
		r.text(dst, s, cx+d, cy, 3, WithAlpha(aberrationB, 0.5))
	}
	r.text(dst, s, cx, cy, 3, WithAlpha(f.Color, 1))
	r.text(dst, f.StatusLabel, cx, cy+34, 1, WithAlpha(f.Color, 0.9))
}

// caption 阶段标题与字幕
func (r *Renderer) caption(dst *ebiten.Image, cx, y float64, f meter.Frame) {
	r.text(dst, f.Phase.Label+" / "+f.Phase.Title, cx, y, 1, color.White)
	for i, line := range f.Phase.Ticker {
		r.text(dst, "> "+line, cx, y+float64(i+1)*glyphH, 1, WithAlpha(f.Color, 0.8))
	}
}

// text 以 (cx, cy) 为中心绘制着色文字
func (r *Renderer) text(dst *ebiten.Image, s string, cx, cy, scale float64, c color.Color) {
	if s == "" {
		return
	}
	w := len(s) * glyphW
	if r.scratch == nil || r.scratch.Bounds().Dx() < w {
		r.scratch = ebiten.NewImage(max(w, 256), glyphH)
	}
	r.scratch.Clear()
	ebitenutil.DebugPrintAt(r.scratch, s, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-float64(w)*scale/2, cy-float64(glyphH)*scale/2)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(r.scratch.SubImage(image.Rect(0, 0, w, glyphH)).(*ebiten.Image), op)
}
