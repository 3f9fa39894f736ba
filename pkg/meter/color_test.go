package meter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientResolve_StopColors(t *testing.T) {
	g := PrimaryGradient()

	tests := []struct {
		name  string
		score float64
		want  RGB
	}{
		{"待机", 0, IdleGrey},
		{"待机阈值下方", 1.99, IdleGrey},
		{"首个色标", 2, IdleGrey},
		{"青色", 35, colorCryo},
		{"黄色", 55, colorSurge},
		{"橙色", 75, colorActive},
		{"红色", 100, colorCritical},
		{"超上限", 150, colorCritical},
		{"负数", -20, IdleGrey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Resolve(tt.score), "Resolve(%v)", tt.score)
		})
	}
}

func TestGradientResolve_Midpoint(t *testing.T) {
	g := PrimaryGradient()

	// 34 + 0.5*221 = 144.5 → 145；211 + 0.5*19 = 220.5 → 221；238 - 119 = 119
	assert.Equal(t, RGB{145, 221, 119}, g.Resolve(45))
}

func TestGradientResolve_Continuity(t *testing.T) {
	for _, g := range []*Gradient{PrimaryGradient(), DialGradient()} {
		prev := g.Resolve(g.IdleThreshold())
		for s := g.IdleThreshold() + 0.01; s <= 100; s += 0.01 {
			c := g.Resolve(s)
			require.LessOrEqual(t, absDiff(c.R, prev.R), 1, "R jump at %v", s)
			require.LessOrEqual(t, absDiff(c.G, prev.G), 1, "G jump at %v", s)
			require.LessOrEqual(t, absDiff(c.B, prev.B), 1, "B jump at %v", s)
			prev = c
		}
	}
}

func TestGradientResolve_DialVariant(t *testing.T) {
	g := DialGradient()

	assert.Equal(t, IdleGrey, g.Resolve(4.99))
	assert.Equal(t, IdleGrey, g.Resolve(5))
	assert.Equal(t, colorSurge, g.Resolve(35), "拖拽表盘 35 分应为黄色")
	assert.Equal(t, colorCryo, g.Resolve(55), "拖拽表盘 55 分应为青色")
	assert.NotEqual(t, PrimaryGradient().Resolve(35), g.Resolve(35))
}

func TestNewGradient_Invalid(t *testing.T) {
	red := RGB{255, 0, 0}

	tests := []struct {
		name  string
		idle  float64
		stops []ColorStop
	}{
		{"色标过少", 2, []ColorStop{{100, red}}},
		{"未排序", 2, []ColorStop{{2, red}, {55, red}, {35, red}, {100, red}}},
		{"重复阈值", 2, []ColorStop{{2, red}, {35, red}, {35, red}, {100, red}}},
		{"末尾不是100", 2, []ColorStop{{2, red}, {90, red}}},
		{"待机阈值上方有缺口", 2, []ColorStop{{10, red}, {100, red}}},
		{"阈值越界", 2, []ColorStop{{-1, red}, {100, red}}},
		{"待机阈值越界", 120, []ColorStop{{2, red}, {100, red}}},
		{"待机阈值为NaN", math.NaN(), []ColorStop{{2, red}, {100, red}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGradient(IdleGrey, tt.idle, tt.stops)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrInvalidStops), "error %v should wrap ErrInvalidStops", err)
		})
	}
}

func TestNewGradient_CopiesStops(t *testing.T) {
	stops := []ColorStop{{0, IdleGrey}, {100, colorCritical}}
	g, err := NewGradient(IdleGrey, 0, stops)
	require.NoError(t, err)

	stops[1].Color = RGB{}
	assert.Equal(t, colorCritical, g.Resolve(100), "修改入参不应影响已创建的渐变")
}

func TestRGB_HexAndRGBA(t *testing.T) {
	assert.Equal(t, "#525252", IdleGrey.Hex())
	assert.Equal(t, "#ff2f2f", colorCritical.Hex())

	r, g, b, a := RGB{255, 0, 128}.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(128*0x101), b)
	assert.Equal(t, uint32(0xffff), a)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
