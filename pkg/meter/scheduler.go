package meter

import "time"

// FrameID 帧回调句柄，0 表示无效
type FrameID uint64

// FrameCallback 帧回调，now 为宿主时钟
type FrameCallback func(now time.Duration)

// FrameScheduler 宿主的逐帧回调调度器
type FrameScheduler interface {
	// RequestFrame 在下一帧执行一次 cb
	RequestFrame(cb FrameCallback) FrameID
	// CancelFrame 撤销尚未执行的回调；对已执行或未知句柄无副作用
	CancelFrame(id FrameID)
}

// FrameQueue 协作式的单线程 FrameScheduler
//
// 宿主每帧调用一次 Run（ebiten 的 Update、bubbletea 的 tick 消息）。
// 在 Run 期间新申请的回调要到下一次 Run 才执行，与浏览器的 requestAnimationFrame 一致。
// 不能跨 goroutine 使用。
type FrameQueue struct {
	next    FrameID
	pending []queuedFrame
	running []queuedFrame
}

type queuedFrame struct {
	id FrameID
	cb FrameCallback
}

// NewFrameQueue 创建帧队列
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame 实现 FrameScheduler
func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameID {
	q.next++
	q.pending = append(q.pending, queuedFrame{id: q.next, cb: cb})
	return q.next
}

// CancelFrame 实现 FrameScheduler
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].cb = nil
			return
		}
	}
}

// Run 执行本帧之前申请的所有回调，返回执行数量
func (q *FrameQueue) Run(now time.Duration) int {
	q.running = q.pending
	q.pending = nil
	defer func() { q.running = nil }()

	ran := 0
	for i := range q.running {
		// 同一帧内前面的回调可能撤销了后面的回调
		cb := q.running[i].cb
		if cb == nil {
			continue
		}
		q.running[i].cb = nil
		cb(now)
		ran++
	}
	return ran
}

// Pending 待执行回调数量
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
