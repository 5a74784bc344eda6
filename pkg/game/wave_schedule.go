package game

// scheduleEpsilon 吸收浮点累加误差（60 帧 × 1/60 秒可能略小于 1.0）
const scheduleEpsilon = 1e-9

// WaveSchedule 下一波的定时记录
//
// 同一时间最多只有一个待触发的计时；由帧驱动器每帧推进，
// 不使用回调闭包，取消后不会再触发
type WaveSchedule struct {
	pending   bool
	remaining float64
}

// Schedule 安排 delay 秒后触发
// 已有待触发计时时不做任何事并返回 false
func (s *WaveSchedule) Schedule(delay float64) bool {
	if s.pending {
		return false
	}
	s.pending = true
	s.remaining = delay
	return true
}

// Cancel 取消待触发的计时
func (s *WaveSchedule) Cancel() {
	s.pending = false
	s.remaining = 0
}

// Pending 是否有待触发的计时
func (s *WaveSchedule) Pending() bool {
	return s.pending
}

// Remaining 剩余秒数（无计时时为 0）
func (s *WaveSchedule) Remaining() float64 {
	return s.remaining
}

// Advance 推进 deltaTime 秒，到期的那一次调用返回 true 并清除计时
func (s *WaveSchedule) Advance(deltaTime float64) bool {
	if !s.pending {
		return false
	}
	s.remaining -= deltaTime
	if s.remaining > scheduleEpsilon {
		return false
	}
	s.pending = false
	s.remaining = 0
	return true
}
