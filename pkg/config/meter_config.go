package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gonewx/angrymeter/internal/particle"
	"github.com/gonewx/angrymeter/pkg/embedded"
	"github.com/gonewx/angrymeter/pkg/meter"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultMeterConfigPath 内置配置文件路径
const DefaultMeterConfigPath = "data/meter.yaml"

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid meter config")

// MeterConfig 表盘配置
//
// 配置文件位置: data/meter.yaml
type MeterConfig struct {
	// IdleColor 待机灰色（十六进制）
	IdleColor string `yaml:"idleColor"`

	// Gradients 具名渐变，key 为渐变名称（如 "primary", "dial"）
	Gradients map[string]GradientConfig `yaml:"gradients"`

	// Variants 表盘列表，按展示顺序排列
	Variants []VariantConfig `yaml:"variants"`

	// Phases 阶段文案，key 为阶段名称（simmer / agitation / rage）
	Phases map[string]PhaseCopyConfig `yaml:"phases"`

	Effects   EffectsConfig   `yaml:"effects"`
	Particles ParticlesConfig `yaml:"particles"`
}

// GradientConfig 渐变配置
type GradientConfig struct {
	IdleThreshold float64      `yaml:"idleThreshold"`
	Stops         []StopConfig `yaml:"stops"`
}

// StopConfig 色标
type StopConfig struct {
	At    float64 `yaml:"at"`
	Color string  `yaml:"color"`
}

// VariantConfig 表盘配置
type VariantConfig struct {
	Name        string  `yaml:"name"`
	Gradient    string  `yaml:"gradient"`
	Breathing   bool    `yaml:"breathing"`
	GlowOpacity float64 `yaml:"glowOpacity"`
}

// PhaseCopyConfig 阶段文案
type PhaseCopyConfig struct {
	Label  string   `yaml:"label,omitempty"`
	Title  string   `yaml:"title"`
	Ticker []string `yaml:"ticker"`
}

// EffectsConfig 跃迁特效时长
type EffectsConfig struct {
	Shake time.Duration `yaml:"shake"`
	Flare time.Duration `yaml:"flare"`
}

// ParticlesConfig 粒子配置
type ParticlesConfig struct {
	Count    int                               `yaml:"count"`
	Geometry GeometryConfig                    `yaml:"geometry"`
	Styles   map[string]particle.EmitterConfig `yaml:"styles"`
}

// GeometryConfig 粒子发射几何
type GeometryConfig struct {
	Radius  float64 `yaml:"radius"`
	MinSize float64 `yaml:"minSize"`
	MaxSize float64 `yaml:"maxSize"`
}

// LoadMeterConfig 加载表盘配置
//
// 优先从 embedded 资源读取（路径以 "data/" 开头且已嵌入），否则从磁盘读取。
//
// 参数:
//   - path: 配置文件路径（如 "data/meter.yaml"）
//
// 返回:
//   - *MeterConfig: 已填充默认值并通过校验的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadMeterConfig(path string) (*MeterConfig, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read meter config %s: %w", path, err)
	}

	cfg, err := ParseMeterConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ResolveMeterConfig 按启动参数选择配置来源
//
// path 非空时从该路径加载；为空时使用嵌入的 data/meter.yaml，
// 未嵌入（命令行工具、测试）则回退到 DefaultMeterConfig。
func ResolveMeterConfig(path string) (*MeterConfig, error) {
	if path != "" {
		return LoadMeterConfig(path)
	}
	if embedded.IsInitialized() && embedded.Exists(DefaultMeterConfigPath) {
		return LoadMeterConfig(DefaultMeterConfigPath)
	}
	return DefaultMeterConfig(), nil
}

// ParseMeterConfig 解析 YAML 配置
// 未知字段视为错误，缺省项使用内置默认值
func ParseMeterConfig(data []byte) (*MeterConfig, error) {
	var cfg MeterConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// 空文档等同于全部使用默认值
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse meter config: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validateMeterConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultMeterConfig 内置默认配置，与 data/meter.yaml 一致
func DefaultMeterConfig() *MeterConfig {
	var cfg MeterConfig
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults 为未配置的字段设置默认值
func applyDefaults(cfg *MeterConfig) {
	if cfg.IdleColor == "" {
		cfg.IdleColor = meter.IdleGrey.Hex()
	}

	if len(cfg.Gradients) == 0 {
		cfg.Gradients = map[string]GradientConfig{
			"primary": gradientConfigOf(meter.PrimaryIdleThreshold, meter.PrimaryStops),
			"dial":    gradientConfigOf(meter.DialIdleThreshold, meter.DialStops),
		}
	}

	if len(cfg.Variants) == 0 {
		cfg.Variants = []VariantConfig{
			{Name: "turbine", Gradient: "primary", Breathing: true, GlowOpacity: meter.TurbineGlowOpacity},
			{Name: "silo", Gradient: "dial", GlowOpacity: meter.SiloGlowOpacity},
			{Name: "orbit", Gradient: "dial", GlowOpacity: meter.OrbitGlowOpacity},
		}
	}

	if cfg.Phases == nil {
		cfg.Phases = make(map[string]PhaseCopyConfig, len(meter.DefaultPhaseCopy))
	}
	for key, cur := range cfg.Phases {
		if p, err := meter.ParsePhase(key); err == nil && cur.Label == "" {
			cur.Label = p.String()
			cfg.Phases[key] = cur
		}
	}
	for p, c := range meter.DefaultPhaseCopy {
		if _, ok := lookupPhase(cfg.Phases, p); !ok {
			cfg.Phases[phaseKey(p)] = PhaseCopyConfig{
				Label:  c.Label,
				Title:  c.Title,
				Ticker: append([]string(nil), c.Ticker...),
			}
		}
	}

	if cfg.Effects.Shake == 0 {
		cfg.Effects.Shake = meter.ShakeDuration
	}
	if cfg.Effects.Flare == 0 {
		cfg.Effects.Flare = meter.FlareDuration
	}

	if cfg.Particles.Count == 0 {
		cfg.Particles.Count = meter.DefaultParticleCount
	}
	if cfg.Particles.Geometry == (GeometryConfig{}) {
		g := meter.DefaultGeometry
		cfg.Particles.Geometry = GeometryConfig{Radius: g.Radius, MinSize: g.MinSize, MaxSize: g.MaxSize}
	}
	if cfg.Particles.Styles == nil {
		cfg.Particles.Styles = make(map[string]particle.EmitterConfig, len(meter.DefaultStyles))
	}
	for p, style := range meter.DefaultStyles {
		if _, ok := lookupStyle(cfg.Particles.Styles, p); !ok {
			cfg.Particles.Styles[phaseKey(p)] = emitterConfigOf(style)
		}
	}
	for key, ec := range cfg.Particles.Styles {
		if ec.Alpha == "" {
			ec.Alpha = particle.DefaultAlpha
			cfg.Particles.Styles[key] = ec
		}
	}
}

// validateMeterConfig 验证配置的完整性和合法性
func validateMeterConfig(cfg *MeterConfig) error {
	if _, err := parseColor(cfg.IdleColor); err != nil {
		return fmt.Errorf("%w: idleColor: %w", ErrInvalidConfig, err)
	}

	for name, g := range cfg.Gradients {
		if _, err := buildGradient(cfg.IdleColor, g); err != nil {
			return fmt.Errorf("%w: gradient %q: %w", ErrInvalidConfig, name, err)
		}
	}

	seen := make(map[string]bool, len(cfg.Variants))
	for i, v := range cfg.Variants {
		if v.Name == "" {
			return fmt.Errorf("%w: variant %d: name is required", ErrInvalidConfig, i)
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: variant %q defined twice", ErrInvalidConfig, v.Name)
		}
		seen[v.Name] = true

		if _, ok := cfg.Gradients[v.Gradient]; !ok {
			return fmt.Errorf("%w: variant %q: unknown gradient %q", ErrInvalidConfig, v.Name, v.Gradient)
		}
		if v.GlowOpacity < 0 || v.GlowOpacity > 1 {
			return fmt.Errorf("%w: variant %q: glowOpacity %v outside [0,1]", ErrInvalidConfig, v.Name, v.GlowOpacity)
		}
	}

	if _, err := buildClassifier(cfg.Phases); err != nil {
		return fmt.Errorf("%w: phases: %w", ErrInvalidConfig, err)
	}

	if cfg.Effects.Shake < 0 || cfg.Effects.Flare < 0 {
		return fmt.Errorf("%w: effect durations cannot be negative", ErrInvalidConfig)
	}

	pc := cfg.Particles
	if pc.Count < 0 {
		return fmt.Errorf("%w: particles.count cannot be negative", ErrInvalidConfig)
	}
	if pc.Geometry.Radius <= 0 {
		return fmt.Errorf("%w: particles.geometry.radius must be positive", ErrInvalidConfig)
	}
	if pc.Geometry.MinSize < 0 || pc.Geometry.MinSize > pc.Geometry.MaxSize {
		return fmt.Errorf("%w: particles.geometry: size range [%v %v] invalid",
			ErrInvalidConfig, pc.Geometry.MinSize, pc.Geometry.MaxSize)
	}
	if _, _, err := buildStyles(pc.Styles); err != nil {
		return fmt.Errorf("%w: particles.styles: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Catalog 由配置构建的表盘集合
type Catalog struct {
	Variants []*meter.Variant
	// Alpha 各阶段粒子透明度曲线
	Alpha map[meter.Phase]particle.Curve
}

// Variant 按名称查找表盘配置
func (c *Catalog) Variant(name string) (*meter.Variant, bool) {
	for _, v := range c.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Names 按展示顺序返回表盘名称
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Variants))
	for i, v := range c.Variants {
		names[i] = v.Name
	}
	return names
}

// Build 将配置转换为可运行的表盘配置
func (cfg *MeterConfig) Build() (*Catalog, error) {
	classifier, err := buildClassifier(cfg.Phases)
	if err != nil {
		return nil, fmt.Errorf("%w: phases: %w", ErrInvalidConfig, err)
	}
	styles, alpha, err := buildStyles(cfg.Particles.Styles)
	if err != nil {
		return nil, fmt.Errorf("%w: particles.styles: %w", ErrInvalidConfig, err)
	}

	gradients := make(map[string]*meter.Gradient, len(cfg.Gradients))
	for name, g := range cfg.Gradients {
		grad, err := buildGradient(cfg.IdleColor, g)
		if err != nil {
			return nil, fmt.Errorf("%w: gradient %q: %w", ErrInvalidConfig, name, err)
		}
		gradients[name] = grad
	}

	geom := meter.Geometry{
		Radius:  cfg.Particles.Geometry.Radius,
		MinSize: cfg.Particles.Geometry.MinSize,
		MaxSize: cfg.Particles.Geometry.MaxSize,
	}

	cat := &Catalog{Alpha: alpha}
	for _, vc := range cfg.Variants {
		grad, ok := gradients[vc.Gradient]
		if !ok {
			return nil, fmt.Errorf("%w: variant %q: unknown gradient %q", ErrInvalidConfig, vc.Name, vc.Gradient)
		}
		cat.Variants = append(cat.Variants, &meter.Variant{
			Name:          vc.Name,
			Gradient:      grad,
			Classifier:    classifier,
			Breathing:     vc.Breathing,
			GlowOpacity:   vc.GlowOpacity,
			ParticleCount: cfg.Particles.Count,
			Styles:        styles,
			Geometry:      geom,
			ShakeDuration: cfg.Effects.Shake,
			FlareDuration: cfg.Effects.Flare,
		})
	}
	return cat, nil
}

// parseColor 解析十六进制颜色（"#RRGGBB" 或 "#RGB"）
func parseColor(s string) (meter.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return meter.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return meter.RGB{R: r, G: g, B: b}, nil
}

func buildGradient(idleHex string, g GradientConfig) (*meter.Gradient, error) {
	idle, err := parseColor(idleHex)
	if err != nil {
		return nil, err
	}
	stops := make([]meter.ColorStop, len(g.Stops))
	for i, s := range g.Stops {
		c, err := parseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		stops[i] = meter.ColorStop{Threshold: s.At, Color: c}
	}
	return meter.NewGradient(idle, g.IdleThreshold, stops)
}

func buildClassifier(phases map[string]PhaseCopyConfig) (*meter.PhaseClassifier, error) {
	texts := make(map[meter.Phase]meter.PhaseCopy, len(phases))
	for key, pc := range phases {
		p, err := meter.ParsePhase(key)
		if err != nil {
			return nil, err
		}
		texts[p] = meter.PhaseCopy{Label: pc.Label, Title: pc.Title, Ticker: pc.Ticker}
	}
	return meter.NewPhaseClassifier(texts)
}

func buildStyles(cfgs map[string]particle.EmitterConfig) (meter.StyleSet, map[meter.Phase]particle.Curve, error) {
	styles := make(meter.StyleSet, len(cfgs))
	alpha := make(map[meter.Phase]particle.Curve, len(cfgs))
	for key, ec := range cfgs {
		p, err := meter.ParsePhase(key)
		if err != nil {
			return nil, nil, err
		}
		s, err := particle.Compile(ec)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", key, err)
		}
		styles[p] = s.ParticleStyle
		alpha[p] = s.Alpha
	}
	return styles, alpha, nil
}

// lookupPhase 按阶段查找文案，key 不区分大小写
func lookupPhase(m map[string]PhaseCopyConfig, p meter.Phase) (PhaseCopyConfig, bool) {
	for key, v := range m {
		if got, err := meter.ParsePhase(key); err == nil && got == p {
			return v, true
		}
	}
	return PhaseCopyConfig{}, false
}

func lookupStyle(m map[string]particle.EmitterConfig, p meter.Phase) (particle.EmitterConfig, bool) {
	for key, v := range m {
		if got, err := meter.ParsePhase(key); err == nil && got == p {
			return v, true
		}
	}
	return particle.EmitterConfig{}, false
}

func phaseKey(p meter.Phase) string {
	switch p {
	case meter.PhaseSimmer:
		return "simmer"
	case meter.PhaseAgitation:
		return "agitation"
	case meter.PhaseRage:
		return "rage"
	}
	return p.String()
}

func gradientConfigOf(idle float64, stops []meter.ColorStop) GradientConfig {
	g := GradientConfig{IdleThreshold: idle, Stops: make([]StopConfig, len(stops))}
	for i, s := range stops {
		g.Stops[i] = StopConfig{At: s.Threshold, Color: s.Color.Hex()}
	}
	return g
}

func emitterConfigOf(s meter.ParticleStyle) particle.EmitterConfig {
	r := particle.Range{Min: s.MinDuration.Seconds(), Max: s.MaxDuration.Seconds()}
	return particle.EmitterConfig{
		Kind:         s.Kind.String(),
		Duration:     r.String(),
		Spread:       s.Spread,
		RadiusJitter: s.RadiusJitter,
	}
}
