package meter

import "time"

// Direction 阶段变化方向
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	}
	return "none"
}

// TransitionEvent 阶段跃迁事件
// 只有升级会产生可见事件；降级只静默更新内部等级
type TransitionEvent struct {
	Occurred  bool
	Direction Direction
	From, To  Phase
}

// TransitionDetector 阶段边沿检测器
//
// 只在等级"变化"时触发，同一等级重复观测不会再次触发，
// 分数在边界附近来回抖动时也不会重复发射同一等级的事件。
type TransitionDetector struct {
	last  Phase
	shake Effect
	flare Effect

	ups   int
	downs int
}

// NewTransitionDetector 创建检测器
// 参数：
//   - initial: 初始原始分数对应的阶段
//   - shake, flare: 特效时长，<= 0 时使用 ShakeDuration / FlareDuration
func NewTransitionDetector(initial Phase, shake, flare time.Duration) *TransitionDetector {
	if shake <= 0 {
		shake = ShakeDuration
	}
	if flare <= 0 {
		flare = FlareDuration
	}
	return &TransitionDetector{
		last:  initial,
		shake: NewEffect(shake),
		flare: NewEffect(flare),
	}
}

// Observe 观测一次当前阶段
func (d *TransitionDetector) Observe(p Phase, now time.Duration) TransitionEvent {
	prev := d.last
	if p == prev {
		return TransitionEvent{}
	}
	d.last = p

	if p.Rank() < prev.Rank() {
		d.downs++
		return TransitionEvent{}
	}

	d.ups++
	d.shake.Trigger(now)
	d.flare.Trigger(now)

	return TransitionEvent{
		Occurred:  true,
		Direction: DirectionUp,
		From:      prev,
		To:        p,
	}
}

// Current 最近一次观测到的阶段
func (d *TransitionDetector) Current() Phase {
	return d.last
}

// Shake 当前抖动状态
func (d *TransitionDetector) Shake(now time.Duration) ShakeState {
	return shakeAt(&d.shake, now)
}

// Flare 当前爆闪状态
func (d *TransitionDetector) Flare(now time.Duration) FlareState {
	return flareAt(&d.flare, now)
}

// Counts 返回累计的升级/降级次数（调试用）
func (d *TransitionDetector) Counts() (ups, downs int) {
	return d.ups, d.downs
}
