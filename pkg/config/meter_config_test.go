package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/angrymeter/internal/particle"
	"github.com/gonewx/angrymeter/pkg/embedded"
	"github.com/gonewx/angrymeter/pkg/meter"
)

// catalogOpts 比较 Catalog 时需要访问 Gradient / PhaseClassifier 的私有字段
var catalogOpts = cmp.Options{
	cmp.AllowUnexported(meter.Gradient{}, meter.PhaseClassifier{}),
	cmpopts.EquateEmpty(),
}

// TestLoadMeterConfig_DataFile 内置配置文件应与代码默认值一致
func TestLoadMeterConfig_DataFile(t *testing.T) {
	cfg, err := LoadMeterConfig(filepath.Join("..", "..", DefaultMeterConfigPath))
	require.NoError(t, err)

	got, err := cfg.Build()
	require.NoError(t, err)
	want, err := DefaultMeterConfig().Build()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, catalogOpts); diff != "" {
		t.Errorf("data/meter.yaml differs from DefaultMeterConfig (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"turbine", "silo", "orbit"}, got.Names())
}

func TestParseMeterConfig_Empty(t *testing.T) {
	cfg, err := ParseMeterConfig(nil)
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultMeterConfig(), cfg); diff != "" {
		t.Errorf("empty config should equal defaults (-want +got):\n%s", diff)
	}
}

func TestDefaultMeterConfig_MatchesEngine(t *testing.T) {
	cat, err := DefaultMeterConfig().Build()
	require.NoError(t, err)

	turbine, ok := cat.Variant("turbine")
	require.True(t, ok)
	primary := meter.PrimaryVariant()

	for s := 0.0; s <= 100; s += 0.25 {
		require.Equal(t, primary.Gradient.Resolve(s), turbine.Gradient.Resolve(s), "turbine color at %v", s)
	}
	assert.True(t, turbine.Breathing)
	assert.Equal(t, meter.TurbineGlowOpacity, turbine.GlowOpacity)

	silo, ok := cat.Variant("silo")
	require.True(t, ok)
	dial := meter.DialVariant()
	for s := 0.0; s <= 100; s += 0.25 {
		require.Equal(t, dial.Gradient.Resolve(s), silo.Gradient.Resolve(s), "silo color at %v", s)
	}
	assert.False(t, silo.Breathing)

	if diff := cmp.Diff(meter.DefaultStyles, turbine.Styles); diff != "" {
		t.Errorf("styles (-want +got):\n%s", diff)
	}
	assert.Equal(t, meter.DefaultPhaseClassifier().Classify(80), turbine.Classifier.Classify(80))

	_, ok = cat.Variant("missing")
	assert.False(t, ok)
}

func TestParseMeterConfig_Overrides(t *testing.T) {
	data := []byte(`
variants:
  - name: solo
    gradient: primary
    glowOpacity: 0.5
phases:
  RAGE:
    title: "MELTDOWN"
    ticker: ["ONE"]
effects:
  shake: 250ms
particles:
  count: 12
  styles:
    agitation:
      kind: plasma
      duration: "[0.2 0.4]"
      spread: 6
      radiusJitter: 2
`)
	cfg, err := ParseMeterConfig(data)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Effects.Shake)
	assert.Equal(t, meter.FlareDuration, cfg.Effects.Flare, "未配置的字段使用默认值")
	assert.Len(t, cfg.Phases, 3)

	cat, err := cfg.Build()
	require.NoError(t, err)
	require.Len(t, cat.Variants, 1)

	v := cat.Variants[0]
	assert.Equal(t, "solo", v.Name)
	assert.Equal(t, 12, v.ParticleCount)
	assert.Equal(t, 250*time.Millisecond, v.ShakeDuration)

	info := v.Classifier.Classify(95)
	assert.Equal(t, "RAGE", info.Label)
	assert.Equal(t, "MELTDOWN", info.Title)
	assert.Equal(t, "WAKING THE GIANT", v.Classifier.Classify(0).Title)

	assert.Equal(t, meter.ParticlePlasma, v.Styles[meter.PhaseAgitation].Kind)
	assert.Equal(t, 400*time.Millisecond, v.Styles[meter.PhaseAgitation].MaxDuration)
	assert.Equal(t, meter.DefaultStyles[meter.PhaseSimmer], v.Styles[meter.PhaseSimmer])

	fade, err := particle.ParseCurve(particle.DefaultAlpha)
	require.NoError(t, err)
	if diff := cmp.Diff(fade, cat.Alpha[meter.PhaseAgitation]); diff != "" {
		t.Errorf("alpha (-want +got):\n%s", diff)
	}
}

func TestParseMeterConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "未知字段",
			yaml: "colour: red\n",
		},
		{
			name: "颜色格式错误",
			yaml: "idleColor: grey\n",
			want: ErrInvalidConfig,
		},
		{
			name: "色标未排序",
			yaml: `
gradients:
  primary:
    idleThreshold: 2
    stops:
      - { at: 2, color: "#525252" }
      - { at: 55, color: "#FFE600" }
      - { at: 35, color: "#22D3EE" }
      - { at: 100, color: "#FF2F2F" }
`,
			want: meter.ErrInvalidStops,
		},
		{
			name: "引用不存在的渐变",
			yaml: `
variants:
  - name: solo
    gradient: neon
`,
			want: ErrInvalidConfig,
		},
		{
			name: "表盘重名",
			yaml: `
variants:
  - { name: a, gradient: primary }
  - { name: a, gradient: dial }
`,
			want: ErrInvalidConfig,
		},
		{
			name: "未知阶段",
			yaml: `
phases:
  fury: { title: X, ticker: [Y] }
`,
			want: ErrInvalidConfig,
		},
		{
			name: "粒子时长格式错误",
			yaml: `
particles:
  styles:
    simmer: { kind: mist, duration: "[2 1]" }
`,
			want: particle.ErrSyntax,
		},
		{
			name: "尺寸区间错误",
			yaml: `
particles:
  geometry: { radius: 10, minSize: 5, maxSize: 1 }
`,
			want: ErrInvalidConfig,
		},
		{
			name: "环境光越界",
			yaml: `
variants:
  - { name: a, gradient: primary, glowOpacity: 2 }
`,
			want: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseMeterConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "error %v should wrap %v", err, tt.want)
			}
		})
	}
}

func TestLoadMeterConfig_MissingFile(t *testing.T) {
	_, err := LoadMeterConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResolveMeterConfig(t *testing.T) {
	t.Run("未嵌入时使用默认值", func(t *testing.T) {
		embedded.Init(nil)
		cfg, err := ResolveMeterConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultMeterConfig(), cfg)
	})

	t.Run("优先读取嵌入资源", func(t *testing.T) {
		embedded.Init(fstest.MapFS{
			"data/meter.yaml": {Data: []byte("effects:\n  shake: 1s\n")},
		})
		t.Cleanup(func() { embedded.Init(nil) })

		cfg, err := ResolveMeterConfig("")
		require.NoError(t, err)
		assert.Equal(t, time.Second, cfg.Effects.Shake)
	})

	t.Run("显式路径", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meter.yaml")
		require.NoError(t, os.WriteFile(path, []byte("particles:\n  count: 5\n"), 0o644))

		cfg, err := ResolveMeterConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Particles.Count)
	})
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#FF6F2E")
	require.NoError(t, err)
	assert.Equal(t, meter.RGB{R: 0xff, G: 0x6f, B: 0x2e}, c)

	c, err = parseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, meter.RGB{R: 255, G: 255, B: 255}, c)

	_, err = parseColor("ff6f2e")
	assert.Error(t, err)
}
