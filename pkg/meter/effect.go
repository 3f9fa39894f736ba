package meter

import (
	"math"
	"time"

	"github.com/gonewx/angrymeter/pkg/utils"
)

// 一次性特效时长
const (
	ShakeDuration = 500 * time.Millisecond
	FlareDuration = 800 * time.Millisecond
)

// 抖动参数
const (
	ShakeAmplitude = 4.0  // 振幅（像素）
	ShakeFrequency = 30.0 // 频率（Hz）
)

// Effect 自动结束的定时特效
//
// 重复触发会从新的触发时刻重新计时，不会叠加。
type Effect struct {
	Duration time.Duration

	start  time.Duration
	active bool
}

// NewEffect 创建特效定时器
func NewEffect(d time.Duration) Effect {
	return Effect{Duration: d}
}

// Trigger 在 now 时刻（重新）开始
func (e *Effect) Trigger(now time.Duration) {
	e.start = now
	e.active = true
}

// Active 在 now 时刻是否仍在生效
func (e *Effect) Active(now time.Duration) bool {
	if !e.active {
		return false
	}
	elapsed := now - e.start
	return elapsed >= 0 && elapsed < e.Duration
}

// Elapsed 自触发以来经过的时间；未生效时为 0
func (e *Effect) Elapsed(now time.Duration) time.Duration {
	if !e.Active(now) {
		return 0
	}
	return now - e.start
}

// Progress 进度 0-1；未生效时为 0
func (e *Effect) Progress(now time.Duration) float64 {
	if !e.Active(now) || e.Duration <= 0 {
		return 0
	}
	return float64(now-e.start) / float64(e.Duration)
}

// ShakeState 抖动输出
type ShakeState struct {
	Active  bool
	OffsetX float64 // 水平偏移（像素）
}

// FlareState 爆闪输出
type FlareState struct {
	Active    bool
	Intensity float64 // 1 → 0 缓出
}

// shakeAt 计算抖动偏移，振幅随进度线性衰减
func shakeAt(e *Effect, now time.Duration) ShakeState {
	if !e.Active(now) {
		return ShakeState{}
	}
	t := e.Elapsed(now).Seconds()
	decay := 1 - e.Progress(now)
	return ShakeState{
		Active:  true,
		OffsetX: ShakeAmplitude * decay * math.Sin(2*math.Pi*ShakeFrequency*t),
	}
}

// flareAt 计算爆闪强度
func flareAt(e *Effect, now time.Duration) FlareState {
	if !e.Active(now) {
		return FlareState{}
	}
	return FlareState{
		Active:    true,
		Intensity: 1 - utils.EaseOutQuad(e.Progress(now)),
	}
}
