package meter

import (
	"math"
	"time"
)

// 平滑参数
const (
	// SmoothingFactor 每帧逼近比例
	// 与帧率耦合：帧率越高，墙钟时间上收敛越快。这是沿用下来的行为，不做时间归一化。
	SmoothingFactor = 0.1
	// MotionTolerance 差值不超过该值视为静止，并直接吸附到目标
	MotionTolerance = 0.1

	// BreathingPeriodMs 呼吸项 sin(t/800) 的时间除数（毫秒）
	BreathingPeriodMs = 800.0
	// BreathingAmplitude 呼吸振幅（分）
	BreathingAmplitude = 0.8
)

// MotionState 平滑器每帧输出
type MotionState struct {
	Value  float64 // 对外展示的平滑值（含呼吸项，已限制到 [0,100]）
	Moving bool    // 是否仍在逼近目标，控制粒子发射
}

// MotionSmoother 逐帧平滑器
//
// 内部累加器只接受指数逼近；呼吸项只叠加在输出上，不会累积成漂移。
type MotionSmoother struct {
	acc       float64
	breathing bool
	last      MotionState
}

// NewMotionSmoother 创建平滑器
// 参数：
//   - initial: 初始值（通常为 0）
//   - breathing: 是否叠加呼吸项（仅主表盘开启）
func NewMotionSmoother(initial float64, breathing bool) *MotionSmoother {
	s := &MotionSmoother{breathing: breathing}
	s.Reset(initial)
	return s
}

// Reset 重置累加器
func (s *MotionSmoother) Reset(value float64) {
	s.acc = Clamp(value)
	s.last = MotionState{Value: s.acc}
}

// Tick 推进一帧
// 参数：
//   - target: 目标分数（原始分数，会被限制到 [0,100]）
//   - now: 宿主提供的当前时间（用于呼吸项）
func (s *MotionSmoother) Tick(target float64, now time.Duration) MotionState {
	target = Clamp(target)

	diff := target - s.acc
	moving := math.Abs(diff) > MotionTolerance
	if moving {
		s.acc += diff * SmoothingFactor
	} else {
		s.acc = target
	}

	value := s.acc
	if s.breathing {
		ms := float64(now) / float64(time.Millisecond)
		value = Clamp(value + math.Sin(ms/BreathingPeriodMs)*BreathingAmplitude)
	}

	s.last = MotionState{Value: value, Moving: moving}
	return s.last
}

// Value 返回未叠加呼吸项的累加器值
func (s *MotionSmoother) Value() float64 {
	return s.acc
}

// Last 返回最近一帧的输出
func (s *MotionSmoother) Last() MotionState {
	return s.last
}

// Breathing 是否开启呼吸项
func (s *MotionSmoother) Breathing() bool {
	return s.breathing
}
