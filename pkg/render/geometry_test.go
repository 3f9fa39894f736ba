package render

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/angrymeter/pkg/meter"
)

func TestPolar(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want Point
	}{
		{"正上方", 0, Point{100, 90}},
		{"右侧", 90, Point{110, 100}},
		{"正下方", 180, Point{100, 110}},
		{"左侧", 270, Point{90, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Polar(100, 100, 10, tt.deg)
			assert.InDelta(t, tt.want.X, p.X, 1e-9)
			assert.InDelta(t, tt.want.Y, p.Y, 1e-9)
		})
	}
}

func TestArcPoints(t *testing.T) {
	assert.Nil(t, ArcPoints(0, 0, 10, 0, 0, 90))

	full := ArcPoints(0, 0, 10, 0, 360, 90)
	require.Len(t, full, 91)
	assert.InDelta(t, full[0].X, full[90].X, 1e-9)
	assert.InDelta(t, full[0].Y, full[90].Y, 1e-9)

	quarter := ArcPoints(0, 0, 10, 0, 90, 90)
	assert.Len(t, quarter, 24)
	for _, p := range quarter {
		assert.InDelta(t, 10, math.Hypot(p.X, p.Y), 1e-9)
	}

	tiny := ArcPoints(0, 0, 10, 0, 0.1, 90)
	assert.Len(t, tiny, 2, "极小弧度也至少一段")
}

func TestSpinAngle(t *testing.T) {
	period := 800 * time.Millisecond
	assert.Zero(t, SpinAngle(0, period))
	assert.InDelta(t, 180, SpinAngle(400*time.Millisecond, period), 1e-9)
	assert.InDelta(t, 90, SpinAngle(1000*time.Millisecond, period), 1e-9)
	assert.Zero(t, SpinAngle(time.Second, 0))
}

func TestPulseFactor(t *testing.T) {
	p := meter.PulsePeriod
	assert.InDelta(t, 1, PulseFactor(0, p), 1e-9)
	assert.InDelta(t, 0, PulseFactor(p/2, p), 1e-9)
	assert.InDelta(t, 1, PulseFactor(p, p), 1e-9)
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(meter.RGB{R: 1, G: 2, B: 3}, 0.5)
	assert.Equal(t, uint8(128), c.A)
	assert.Equal(t, uint8(255), WithAlpha(meter.IdleGrey, 7).A)
	assert.Equal(t, uint8(0), WithAlpha(meter.IdleGrey, -1).A)
}

func TestGlowAlpha(t *testing.T) {
	v := meter.PrimaryVariant()

	idle := meter.Frame{Signals: v.Derive(0)}
	assert.Zero(t, GlowAlpha(idle))

	calm := meter.Frame{Signals: v.Derive(50)}
	assert.InDelta(t, meter.TurbineGlowOpacity, GlowAlpha(calm), 1e-9)

	hot := meter.Frame{Now: meter.PulsePeriod / 2, Signals: v.Derive(95)}
	assert.InDelta(t, meter.TurbineGlowOpacity*0.5, GlowAlpha(hot), 1e-9, "脉冲低谷")

	flare := meter.Frame{Signals: v.Derive(50), Flare: meter.FlareState{Active: true, Intensity: 1}}
	assert.InDelta(t, meter.TurbineGlowOpacity+0.5, GlowAlpha(flare), 1e-9)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0", formatScore(-3))
	assert.Equal(t, "43", formatScore(42.6))
	assert.Equal(t, "100", formatScore(180))
}
