// Package meter 提供"愤怒值"指示器的核心引擎
//
// 输入一个 0-100 的分数，输出颜色、旋转周期、噪点/扭曲强度、叙事阶段、
// 以及阶段升级时触发的一次性特效（抖动/爆闪）和粒子。
// 引擎只输出抽象数值，不关心渲染方式（ebiten、终端均可）。
//
// 所有派生函数都是纯函数；MotionSmoother、TransitionDetector、Meter
// 持有单实例状态，只能由同一个帧回调驱动，不需要加锁。
package meter

import "math"

const (
	// MinScore 分数下限
	MinScore = 0.0
	// MaxScore 分数上限
	MaxScore = 100.0
)

// Clamp 将分数限制到 [0,100]
// NaN 视为 0
func Clamp(score float64) float64 {
	if math.IsNaN(score) {
		return MinScore
	}
	return math.Max(MinScore, math.Min(MaxScore, score))
}
