// Package utils 提供表盘特效共用的缓动曲线
package utils

import "math"

// Easing Functions (缓动函数)
//
// 用于表盘特效的强度曲线（爆闪衰减、心跳脉冲、抖动衰减）。
// 所有函数接受进度 t ∈ [0, 1]，返回值 ∈ [0, 1]；越界输入先被限制。
//
// 参考：https://easings.net/

// Clamp01 将 t 限制到 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// EaseLinear 线性（无缓动）
func EaseLinear(t float64) float64 {
	return Clamp01(t)
}

// EaseOutQuad 二次方缓出
// 爆闪强度使用：开始衰减快，结束慢
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutSine 正弦缓入缓出
// 心跳脉冲使用，两端平滑
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	t = Clamp01(t)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// PingPong 将单调进度折返为 0→1→0
// 用于循环动画（脉冲、雾粒子透明度）
func PingPong(t float64) float64 {
	t = t - math.Floor(t)
	if t < 0.5 {
		return t * 2
	}
	return (1 - t) * 2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b（不限制 t）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
