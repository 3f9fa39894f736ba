package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 当前帧的指针状态
// 统一处理鼠标左键和第一个触点，移动端没有鼠标
type Pointer struct {
	X, Y        float64
	Down        bool // 鼠标左键按住或有活动触点
	JustPressed bool // 本帧刚按下
	Touch       bool
}

// ReadPointer 读取当前帧的指针状态，优先检测触摸
func ReadPointer() Pointer {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return Pointer{
			X:           float64(x),
			Y:           float64(y),
			Down:        true,
			JustPressed: inpututil.TouchPressDuration(ids[0]) == 1,
			Touch:       true,
		}
	}

	x, y := ebiten.CursorPosition()
	return Pointer{
		X:           float64(x),
		Y:           float64(y),
		Down:        ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

// KeyRepeat 按住时长（tick）是否应产生一次步进
// 参数：
//   - ticks: inpututil.KeyPressDuration 的返回值
//   - delay: 首次按下后等待的 tick 数
//   - every: 之后每隔多少 tick 触发一次
func KeyRepeat(ticks, delay, every int) bool {
	if ticks == 1 {
		return true
	}
	if every <= 0 {
		return false
	}
	return ticks > delay && (ticks-delay)%every == 0
}
