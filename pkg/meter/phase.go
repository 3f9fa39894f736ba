package meter

import (
	"fmt"
	"strings"
)

// Phase 叙事阶段
// 数值即等级（rank），可直接比较大小
type Phase int

const (
	PhaseSimmer    Phase = iota + 1 // 酝酿
	PhaseAgitation                  // 躁动
	PhaseRage                       // 暴怒
)

// 阶段分界（原始分数，严格大于）
const (
	AgitationThreshold = 30.0
	RageThreshold      = 70.0
)

// Rank 返回阶段等级 1-3
func (p Phase) Rank() int {
	return int(p)
}

func (p Phase) String() string {
	switch p {
	case PhaseSimmer:
		return "SIMMER"
	case PhaseAgitation:
		return "AGITATION"
	case PhaseRage:
		return "RAGE"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Valid 是否为已定义阶段
func (p Phase) Valid() bool {
	return p >= PhaseSimmer && p <= PhaseRage
}

// ParsePhase 解析阶段名称（不区分大小写）
func ParsePhase(s string) (Phase, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SIMMER":
		return PhaseSimmer, nil
	case "AGITATION":
		return PhaseAgitation, nil
	case "RAGE":
		return PhaseRage, nil
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// PhaseOf 原始分数 → 阶段
// 30 仍属于 SIMMER，70 仍属于 AGITATION
func PhaseOf(raw float64) Phase {
	raw = Clamp(raw)
	switch {
	case raw > RageThreshold:
		return PhaseRage
	case raw > AgitationThreshold:
		return PhaseAgitation
	default:
		return PhaseSimmer
	}
}

// PhaseCopy 阶段对应的文案
type PhaseCopy struct {
	Label  string
	Title  string
	Ticker []string // 滚动字幕，循环播放，节奏由外部决定
}

// PhaseInfo 分类结果
type PhaseInfo struct {
	Phase  Phase
	Label  string
	Title  string
	Ticker []string
}

// PhaseClassifier 阶段分类器（纯函数 + 固定文案表）
type PhaseClassifier struct {
	copy map[Phase]PhaseCopy
}

// NewPhaseClassifier 创建分类器
// 每个阶段都必须提供非空的字幕列表
func NewPhaseClassifier(texts map[Phase]PhaseCopy) (*PhaseClassifier, error) {
	table := make(map[Phase]PhaseCopy, 3)
	for _, p := range []Phase{PhaseSimmer, PhaseAgitation, PhaseRage} {
		c, ok := texts[p]
		if !ok {
			return nil, fmt.Errorf("missing copy for phase %s", p)
		}
		if len(c.Ticker) == 0 {
			return nil, fmt.Errorf("phase %s: ticker must not be empty", p)
		}
		ticker := make([]string, len(c.Ticker))
		copy(ticker, c.Ticker)
		c.Ticker = ticker
		table[p] = c
	}
	return &PhaseClassifier{copy: table}, nil
}

// DefaultPhaseClassifier 使用内置文案
func DefaultPhaseClassifier() *PhaseClassifier {
	pc, err := NewPhaseClassifier(DefaultPhaseCopy)
	if err != nil {
		panic(err)
	}
	return pc
}

// Classify 原始（未平滑）分数 → 阶段与文案
func (pc *PhaseClassifier) Classify(raw float64) PhaseInfo {
	p := PhaseOf(raw)
	c := pc.copy[p]
	return PhaseInfo{
		Phase:  p,
		Label:  c.Label,
		Title:  c.Title,
		Ticker: c.Ticker,
	}
}

// DefaultPhaseCopy 内置文案
var DefaultPhaseCopy = map[Phase]PhaseCopy{
	PhaseSimmer: {
		Label:  "SIMMER",
		Title:  "WAKING THE GIANT",
		Ticker: []string{"COMPETITORS IDENTIFIED", "KEYWORDS TARGETED"},
	},
	PhaseAgitation: {
		Label:  "AGITATION",
		Title:  "THEY KNOW YOU'RE HERE",
		Ticker: []string{"RANKINGS GAINED", "VISIBILITY DROPPING"},
	},
	PhaseRage: {
		Label:  "RAGE",
		Title:  "COMPETITOR PANIC",
		Ticker: []string{"AUTHORITY SCORE: MAX", "TRAFFIC HIJACKED"},
	},
}
