package game

// WaveClock 波浪模拟使用的单调时钟
//
// 宿主每帧调用 Advance(deltaTime) 推进时间；Elapsed() 保证不递减：
//   - 负的 deltaTime 被忽略
//   - 暂停时不推进
//   - TimeScale 只能为非负数（0 等效于冻结）
type WaveClock struct {
	elapsed   float64
	paused    bool
	timeScale float64
}

// NewWaveClock 创建从 0 开始、倍速为 1 的时钟
func NewWaveClock() *WaveClock {
	return &WaveClock{timeScale: 1}
}

// Advance 推进时钟
// 参数：
//   - deltaTime: 宿主帧间隔（秒）
//
// 返回：推进后的累计时间
func (c *WaveClock) Advance(deltaTime float64) float64 {
	if c.paused || deltaTime <= 0 {
		return c.elapsed
	}
	c.elapsed += deltaTime * c.timeScale
	return c.elapsed
}

// Elapsed 返回累计时间（秒）
func (c *WaveClock) Elapsed() float64 {
	return c.elapsed
}

// SetPaused 设置暂停状态
func (c *WaveClock) SetPaused(paused bool) {
	c.paused = paused
}

// TogglePause 切换暂停状态并返回新状态
func (c *WaveClock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// IsPaused 是否处于暂停
func (c *WaveClock) IsPaused() bool {
	return c.paused
}

// SetTimeScale 设置倍速，负值按 0 处理
func (c *WaveClock) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.timeScale = scale
}

// TimeScale 返回当前倍速
func (c *WaveClock) TimeScale() float64 {
	return c.timeScale
}
